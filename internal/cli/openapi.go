package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/verdict/internal/api"
	"github.com/JaimeStill/verdict/internal/infrastructure"
	"github.com/JaimeStill/verdict/pkg/openapi"
)

func newOpenAPICommand(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Write the OpenAPI document for the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			infra, err := infrastructure.NewWithWriter(cfg, io.Discard)
			if err != nil {
				return err
			}
			a, err := api.New(cfg, infra)
			if err != nil {
				return err
			}

			if output != "" {
				if err := openapi.WriteJSON(a.Spec, output); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
				return nil
			}

			return openapi.Encode(cmd.OutOrStdout(), a.Spec)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the configured service version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(&options{})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "verdict version %s\n", cfg.Version)
			return nil
		},
	}
}
