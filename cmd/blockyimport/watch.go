package main

import (
	"context"
	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/blockyimport/internal/logger"
	"github.com/Faultbox/blockyimport/internal/texture"
	"github.com/Faultbox/blockyimport/internal/watcher"
)

var watchOutput string

var watchCmd = &cobra.Command{
	Use:   "watch [model...]",
	Short: "Re-convert models whenever they change",
	Long: `Convert each model once, then watch it (and the configured texture)
and convert again after every save until interrupted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "Output file (single input only)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchOutput != "" && len(args) > 1 {
		return fmt.Errorf("--output needs exactly one input, got %d", len(args))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	outputs := make(map[string]string, len(args))
	for _, input := range args {
		out := watchOutput
		if out == "" {
			out = outputPath(input, cfg.Export.OutputDir, cfg.Export.Format)
		}
		outputs[input] = out
	}

	prober := texture.NewProber()
	var mu sync.Mutex
	convert := func(input string) {
		mu.Lock()
		defer mu.Unlock()
		out := outputs[input]
		if err := convertFile(ctx, cfg, prober, input, out); err != nil {
			// Keep watching; the next save may fix the file.
			logger.Error("conversion failed", zap.String("input", input), zap.Error(err))
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s -> %s\n", time.Now().Format("15:04:05"), input, out)
	}

	fw, err := watcher.NewFileWatcher(time.Duration(cfg.Watch.DebounceMS) * time.Millisecond)
	if err != nil {
		return err
	}
	defer fw.Close()

	for _, input := range args {
		if err := fw.Watch([]string{input}, func(string) { convert(input) }); err != nil {
			return err
		}
	}
	if cfg.Watch.Textures && cfg.Import.TexturePath != "" {
		// A new atlas size changes every model's UVs.
		if err := fw.Watch([]string{cfg.Import.TexturePath}, func(string) {
			for _, input := range args {
				convert(input)
			}
		}); err != nil {
			return err
		}
	}

	for _, input := range args {
		convert(input)
	}
	fw.Start()
	logger.Info("watching for changes", zap.Strings("files", args))

	<-ctx.Done()
	logger.Info("stopped watching")
	return nil
}
