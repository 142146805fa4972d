// blockyimport converts .blockymodel files into glTF or OBJ scenes.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/blockyimport/internal/config"
	"github.com/Faultbox/blockyimport/internal/logger"
	"github.com/Faultbox/blockyimport/pkg/blockymodel"
)

// These variables are set via ldflags during build
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	flags config.Flags
	cfg   *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "blockyimport",
	Short: "Convert blockymodel files into glTF or OBJ scenes",
	Long: `blockyimport reads the JSON blockymodel format, rebuilds its node
hierarchy with box and quad primitives and UV-mapped texture coordinates,
and writes the result as glTF 2.0 (.glb/.gltf) or Wavefront OBJ.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(&flags)
		if err != nil {
			return err
		}
		if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		logger.Sugar.Debugf("Config: %+v", cfg)
		return nil
	},
}

func init() {
	flags.Register(rootCmd.PersistentFlags())
}

func main() {
	err := rootCmd.Execute()
	logger.Sync()
	if err != nil {
		logger.Error("command failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode separates bad input files from other failures.
func exitCode(err error) int {
	switch {
	case errors.Is(err, blockymodel.ErrFileNotFound),
		errors.Is(err, blockymodel.ErrMalformedJSON),
		errors.Is(err, blockymodel.ErrMissingField),
		errors.Is(err, blockymodel.ErrUnknownShapeType):
		return 2
	default:
		return 1
	}
}
