// Command numberdle serves the Numberdle API and plays it in the terminal.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/numberdle/internal/config"
)

var (
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "numberdle",
	Short:         "Guess the five-digit number in six tries",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = c
		setupLogging(cfg.Logging, cmd.Name() != "serve")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default ./"+config.DefaultPath+" if present)")
}

// setupLogging sets the global level and, for interactive commands or when
// asked, switches to human-readable console output on stderr.
func setupLogging(lc config.LoggingConfig, interactive bool) {
	lvl, err := zerolog.ParseLevel(lc.Level)
	if err != nil || lc.Level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	if lc.Pretty || interactive {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("numberdle failed")
		os.Exit(1)
	}
}
