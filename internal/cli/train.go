package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/happyhackingspace/postag"
	"github.com/spf13/cobra"
)

func (c *CLI) newTrainCommand() *cobra.Command {
	var inputDir, configPath, featurePath, modelPath, mode string
	var threshold float64

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train tagging models and package them into one artifact",
		Args:  cobra.NoArgs,
		Example: `  postag train -i corpus/ -c postag.toml -f features.yaml -m model.zip
  postag train -i corpus/ -f features.yaml -m model.zip --mode dynamic
  postag train -i corpus/ -f features.yaml -m model.zip --mode dynamic -t 0.42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := postag.ParseMode(mode)
			if err != nil {
				return err
			}
			corp, opts, err := setup(inputDir, configPath, featurePath)
			if err != nil {
				return err
			}

			slog.Info("Training", "input", inputDir, "mode", m, "output", modelPath)
			start := time.Now()
			art, err := postag.Train(context.Background(), corp, opts, m, threshold)
			if err != nil {
				return err
			}
			slog.Debug("Training completed", "duration", time.Since(start))
			if err := art.Save(modelPath); err != nil {
				return err
			}
			slog.Info("Model saved", "path", modelPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputDir, "input", "i", "", "Directory of training corpus files")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file (toml, yaml or json)")
	cmd.Flags().StringVarP(&featurePath, "features", "f", "", "Feature descriptor file")
	cmd.Flags().StringVarP(&modelPath, "model", "m", "", "Output artifact path")
	cmd.Flags().Float64VarP(&threshold, "threshold", "t", -1, "Similarity threshold for dynamic mode (-1 calibrates it)")
	cmd.Flags().StringVar(&mode, "mode", "general", "Models to train: domain, general or dynamic")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("features")
	_ = cmd.MarkFlagRequired("model")
	return cmd
}
