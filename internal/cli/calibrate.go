package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/happyhackingspace/postag"
	"github.com/spf13/cobra"
)

func (c *CLI) newCalibrateCommand() *cobra.Command {
	var inputDir, configPath, featurePath string

	cmd := &cobra.Command{
		Use:     "calibrate",
		Short:   "Calibrate the domain similarity threshold via leave-one-shard-out cross-validation",
		Args:    cobra.NoArgs,
		Example: `  postag calibrate -i corpus/ -c postag.toml -f features.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			corp, opts, err := setup(inputDir, configPath, featurePath)
			if err != nil {
				return err
			}
			slog.Info("Calibrating", "input", inputDir, "folds", len(corp.Files))
			start := time.Now()
			threshold, err := postag.CrossValidate(context.Background(), corp, opts)
			if err != nil {
				return err
			}
			slog.Debug("Calibration completed", "duration", time.Since(start))
			fmt.Printf("Threshold: %s\n", formatThreshold(threshold))
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputDir, "input", "i", "", "Directory of training corpus files")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file (toml, yaml or json)")
	cmd.Flags().StringVarP(&featurePath, "features", "f", "", "Feature descriptor file")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("features")
	return cmd
}

func formatThreshold(th float64) string {
	return fmt.Sprintf("%.3f", th)
}
