package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/blockyimport/internal/config"
	"github.com/Faultbox/blockyimport/internal/importer"
	"github.com/Faultbox/blockyimport/internal/logger"
	"github.com/Faultbox/blockyimport/internal/texture"
)

var convertOutput string

var convertCmd = &cobra.Command{
	Use:   "convert [model...]",
	Short: "Convert blockymodel files to glTF or OBJ",
	Long: `Convert one or more blockymodel files. The output format comes from
--format, or from the extension of --output when converting a single file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output file (single input only)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	if convertOutput != "" && len(args) > 1 {
		return fmt.Errorf("--output needs exactly one input, got %d", len(args))
	}

	prober := texture.NewProber()
	for _, input := range args {
		out := convertOutput
		if out == "" {
			out = outputPath(input, cfg.Export.OutputDir, cfg.Export.Format)
		}
		if err := convertFile(cmd.Context(), cfg, prober, input, out); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", input, out)
	}
	return nil
}

// convertFile imports input and writes it to out.
func convertFile(ctx context.Context, c *config.Config, prober *texture.Prober, input, out string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	exp, err := newExporter(formatOf(out, c.Export.Format))
	if err != nil {
		return err
	}

	ic := importer.FromConfig(c.Import, input)
	ic.Prober = prober
	if _, err := importer.Import(ctx, ic, exp); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	if err := exp.Save(out); err != nil {
		return err
	}
	logger.Debug("converted", zap.String("input", input), zap.String("output", out))
	return nil
}
