package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agenthands/kgquiz/internal/config"
	"github.com/agenthands/kgquiz/internal/observability"
)

const defaultConfigPath = "config/config.toml"

type rootOptions struct {
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "quizgen",
		Short:         "Generate multiple-choice trivia questions from a knowledge graph.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			opts.logger = observability.NewLogger(cfg.Logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default $CONFIG_PATH or "+defaultConfigPath+")")

	generate := newGenerateCmd(opts)
	root.AddCommand(generate, newRefreshClassesCmd(opts))
	// Running quizgen without a subcommand generates questions.
	root.RunE = generate.RunE
	root.Flags().AddFlagSet(generate.Flags())

	return root
}

// loadConfig reads path, then $CONFIG_PATH, then the default location. A missing
// default file is not an error; the built-in defaults apply.
func loadConfig(path string) (*config.Config, error) {
	explicit := path != ""
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		explicit = path != ""
	}
	if path == "" {
		path = defaultConfigPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = config.Default()
	}
	cfg.ApplyEnvOverrides()
	return cfg, nil
}
