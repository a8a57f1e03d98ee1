// Package cli implements verdictctl, the operator command line for training,
// inspecting, and querying persisted model artifacts offline.
package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/verdict/internal/config"
	"github.com/JaimeStill/verdict/pkg/logging"
	"github.com/JaimeStill/verdict/pkg/storage"
)

type options struct {
	modelDir string
	json     bool
}

// NewRootCommand builds the verdictctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "verdictctl",
		Short: "Manage verdict sentiment model artifacts",
		Long: `verdictctl trains, inspects, and queries the vectorizer/classifier pair
that the verdict service loads at startup. Configuration is read the same
way as the service: config.toml, the VERDICT_ENV overlay, then environment.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.modelDir, "model-dir", "", "override the configured model directory")

	root.AddCommand(
		newTrainCommand(opts),
		newPredictCommand(opts),
		newInspectCommand(opts),
		newResetCommand(opts),
		newOpenAPICommand(opts),
		newVersionCommand(),
	)

	return root
}

// loadConfig reads configuration and applies command-line overrides.
func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if opts.modelDir != "" {
		cfg.Storage.Backend = storage.BackendFilesystem
		cfg.Storage.ModelDir = opts.modelDir
	}
	return cfg, nil
}

func openStore(cmd *cobra.Command, opts *options) (*config.Config, storage.System, *slog.Logger, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, nil, nil, err
	}

	logger := logging.New(&cfg.Logging, cmd.ErrOrStderr())
	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open storage: %w", err)
	}
	return cfg, store, logger, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
