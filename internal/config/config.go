// Package config loads training configuration with viper.
//
//	[reader]
//	format = "tsv"
//	form_column = 0
//	lemma_column = 1
//	tag_column = 2
//	encoding = "utf-8"
//
//	[trainer]
//	c1 = 0.1
//	c2 = 0.01
//	max_iterations = 100
//	epsilon = 1e-5
//
//	workers = 8
//	fold_workers = 1
//
// Every key can be overridden by a POSTAG_ environment variable,
// e.g. POSTAG_TRAINER_C1.
package config

import (
	"runtime"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/happyhackingspace/postag/internal/corpus"
	"github.com/happyhackingspace/postag/maxent"
	"github.com/spf13/viper"
)

// Config is the training configuration.
type Config struct {
	Reader      ReaderConfig  `mapstructure:"reader"`
	Trainer     TrainerConfig `mapstructure:"trainer"`
	Workers     int           `mapstructure:"workers"`
	FoldWorkers int           `mapstructure:"fold_workers"`
}

// ReaderConfig describes the corpus layout.
type ReaderConfig struct {
	Format      string `mapstructure:"format"`
	FormColumn  int    `mapstructure:"form_column"`
	LemmaColumn int    `mapstructure:"lemma_column"`
	TagColumn   int    `mapstructure:"tag_column"`
	Encoding    string `mapstructure:"encoding"`
}

// TrainerConfig holds optimizer hyperparameters.
type TrainerConfig struct {
	C1            float64 `mapstructure:"c1"`
	C2            float64 `mapstructure:"c2"`
	MaxIterations int     `mapstructure:"max_iterations"`
	Epsilon       float64 `mapstructure:"epsilon"`
}

// SetDefaults configures default values for all options.
func SetDefaults(v *viper.Viper) {
	f := corpus.DefaultFormat()
	v.SetDefault("reader.format", f.Name)
	v.SetDefault("reader.form_column", f.FormColumn)
	v.SetDefault("reader.lemma_column", f.LemmaColumn)
	v.SetDefault("reader.tag_column", f.TagColumn)
	v.SetDefault("reader.encoding", "utf-8")

	t := maxent.DefaultTrainerConfig()
	v.SetDefault("trainer.c1", t.C1)
	v.SetDefault("trainer.c2", t.C2)
	v.SetDefault("trainer.max_iterations", t.MaxIterations)
	v.SetDefault("trainer.epsilon", t.Epsilon)

	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("fold_workers", 1)
}

// Load reads the configuration file at path; an empty path yields the
// defaults. The file type follows its extension (toml, yaml, json).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("POSTAG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config file %s", path)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrapf(err, "unmarshal config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return errors.Newf("workers must be at least 1, got %d", c.Workers)
	}
	if c.FoldWorkers < 1 {
		return errors.Newf("fold_workers must be at least 1, got %d", c.FoldWorkers)
	}
	if c.Trainer.C1 < 0 || c.Trainer.C2 < 0 {
		return errors.New("trainer regularization must be non-negative")
	}
	if c.Trainer.MaxIterations < 1 {
		return errors.Newf("trainer.max_iterations must be at least 1, got %d", c.Trainer.MaxIterations)
	}
	return nil
}

// Format returns the corpus format described by the reader section.
func (c *Config) Format() corpus.Format {
	return corpus.Format{
		Name:        c.Reader.Format,
		FormColumn:  c.Reader.FormColumn,
		LemmaColumn: c.Reader.LemmaColumn,
		TagColumn:   c.Reader.TagColumn,
		Encoding:    c.Reader.Encoding,
	}
}

// TrainerConfig returns the optimizer settings.
func (c *Config) TrainerConfig() maxent.TrainerConfig {
	return maxent.TrainerConfig{
		C1:            c.Trainer.C1,
		C2:            c.Trainer.C2,
		MaxIterations: c.Trainer.MaxIterations,
		Epsilon:       c.Trainer.Epsilon,
	}
}
