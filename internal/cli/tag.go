package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/happyhackingspace/postag"
	"github.com/happyhackingspace/postag/internal/config"
	"github.com/happyhackingspace/postag/internal/corpus"
	"github.com/spf13/cobra"
)

func (c *CLI) newTagCommand() *cobra.Command {
	var modelPath, configPath string
	var showModel bool

	cmd := &cobra.Command{
		Use:   "tag <file>",
		Short: "Tag a corpus file with a trained artifact",
		Args:  cobra.ExactArgs(1),
		Example: `  # Tag a tsv file, one "form<TAB>tag" line per token
  postag tag -m model.zip test.tsv

  # Read an xml corpus and show which model tagged each sentence
  postag tag -m model.zip -c xml.toml --show-model test.xml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			open, err := corpus.NewOpener(cfg.Format())
			if err != nil {
				return err
			}

			start := time.Now()
			art, err := postag.LoadArtifact(modelPath)
			if err != nil {
				return err
			}
			slog.Debug("Model loaded", "models", len(art.Taggers), "threshold", art.Threshold, "duration", time.Since(start))

			sentences, err := corpus.ReadAll(open, args[0])
			if err != nil {
				return err
			}

			start = time.Now()
			slots, err := tagSentences(art, sentences, cfg.Workers)
			if err != nil {
				return err
			}
			slog.Debug("Tagging completed", "sentences", len(sentences), "duration", time.Since(start))

			w := bufio.NewWriter(os.Stdout)
			if err := writeTagged(w, sentences, slots, showModel); err != nil {
				return err
			}
			if err := w.Flush(); err != nil {
				return err
			}
			logAccuracy(sentences)
			return nil
		},
	}

	cmd.Flags().StringVarP(&modelPath, "model", "m", "", "Path to model artifact")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file describing the corpus format")
	cmd.Flags().BoolVar(&showModel, "show-model", false, "Print the model chosen for each sentence as a comment")
	_ = cmd.MarkFlagRequired("model")
	return cmd
}

// tagSentences tags with the dynamic selector when the artifact holds two
// models, otherwise with its only model. It returns the slot per sentence,
// or -1 for single-model artifacts.
func tagSentences(art *postag.Artifact, sentences []corpus.Sentence, workers int) ([]int, error) {
	if len(art.Taggers) == 2 {
		sel, err := art.Selector()
		if err != nil {
			return nil, err
		}
		return sel.TagAll(context.Background(), sentences, workers)
	}
	slots := make([]int, len(sentences))
	for i, s := range sentences {
		art.Taggers[0].Tag(s)
		slots[i] = -1
	}
	return slots, nil
}

func writeTagged(w io.Writer, sentences []corpus.Sentence, slots []int, showModel bool) error {
	for i, s := range sentences {
		if showModel && slots[i] >= 0 {
			if _, err := fmt.Fprintf(w, "# model: %s\n", postag.SlotName(slots[i])); err != nil {
				return err
			}
		}
		for _, tok := range s {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", tok.Form, tok.Predicted); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func logAccuracy(sentences []corpus.Sentence) {
	correct, total := 0, 0
	for _, s := range sentences {
		for _, tok := range s {
			if tok.Tag == "" {
				continue
			}
			total++
			if tok.Predicted == tok.Tag {
				correct++
			}
		}
	}
	if total == 0 {
		return
	}
	slog.Info("Accuracy", "correct", correct, "total", total,
		"accuracy", fmt.Sprintf("%.2f%%", float64(correct)/float64(total)*100))
}
