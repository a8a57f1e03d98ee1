package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/verdict/internal/model"
	"github.com/JaimeStill/verdict/pkg/formatting"
)

// ErrArtifactsExist is returned by train when a pair is already persisted and --force is not set.
var ErrArtifactsExist = errors.New("model artifacts already exist; use --force to replace them")

func newTrainCommand(opts *options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Fit a new model pair and persist it",
		Long: `Fits the vectorizer and classifier on the built-in corpus and writes both
artifacts to the configured model location. Existing artifacts are kept
unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, store, _, err := openStore(cmd, opts)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			exists, err := model.Exists(ctx, store)
			if err != nil {
				return err
			}
			if exists && !force {
				return ErrArtifactsExist
			}

			pair, err := model.Train()
			if err != nil {
				return err
			}
			sizes, err := model.Persist(ctx, store, pair)
			if err != nil {
				return err
			}

			if opts.json {
				return printJSON(cmd, pair.Info())
			}

			fmt.Fprintf(cmd.OutOrStdout(), "trained pair %s (%d terms) at %s\n", pair.ID, pair.Vectorizer.Features(), store.Location())
			for _, key := range []string{model.VectorizerKey, model.ClassifierKey} {
				fmt.Fprintf(cmd.OutOrStdout(), "  %-16s %s\n", key, formatting.FormatBytes(int64(sizes[key]), 1))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "replace existing artifacts")
	cmd.Flags().BoolVar(&opts.json, "json", false, "output the trained pair summary as JSON")
	return cmd
}

func newPredictCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict [text]",
		Short: "Classify text with the persisted model",
		Long: `Loads the persisted pair and classifies the given text. Multiple arguments
are joined with spaces. The artifacts must exist; run train first.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, _, err := openStore(cmd, opts)
			if err != nil {
				return err
			}

			pair, err := model.Load(cmd.Context(), store)
			if err != nil {
				return err
			}

			text := strings.Join(args, " ")
			label, confidence, err := pair.Predict(text)
			if err != nil {
				return fmt.Errorf("%w: %w", model.ErrInference, err)
			}

			if opts.json {
				return printJSON(cmd, model.Prediction{
					Text:       text,
					Prediction: label,
					Confidence: confidence,
					Tenant:     cfg.Tenant,
				})
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%.2f)\n", label, confidence)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "output the prediction as JSON")
	return cmd
}

func newInspectCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Describe the persisted model pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, store, _, err := openStore(cmd, opts)
			if err != nil {
				return err
			}

			pair, err := model.Load(cmd.Context(), store)
			if err != nil {
				return err
			}
			info := pair.Info()

			if opts.json {
				return printJSON(cmd, info)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "pair:       %s\n", info.PairID)
			fmt.Fprintf(cmd.OutOrStdout(), "created:    %s\n", info.CreatedAt.Format("2006-01-02 15:04:05 MST"))
			fmt.Fprintf(cmd.OutOrStdout(), "location:   %s\n", store.Location())
			fmt.Fprintf(cmd.OutOrStdout(), "vocabulary: %d terms\n", info.Vocabulary)

			labels := make([]string, 0, len(info.ClassPriors))
			for label := range info.ClassPriors {
				labels = append(labels, label)
			}
			slices.Sort(labels)
			for _, label := range labels {
				fmt.Fprintf(cmd.OutOrStdout(), "prior %-8s %.3f\n", label+":", info.ClassPriors[label])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "output as JSON")
	return cmd
}

func newResetCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete the persisted model pair",
		Long: `Removes both artifacts so the next service start trains a fresh pair.
Missing artifacts are not an error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, store, logger, err := openStore(cmd, opts)
			if err != nil {
				return err
			}

			if err := model.Reset(cmd.Context(), store); err != nil {
				return err
			}

			logger.Info("model artifacts removed", "location", store.Location())
			fmt.Fprintf(cmd.OutOrStdout(), "removed artifacts from %s\n", store.Location())
			return nil
		},
	}
}
