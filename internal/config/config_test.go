package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if c.Reader.Format != "tsv" || c.Reader.FormColumn != 0 || c.Reader.TagColumn != 2 {
		t.Errorf("reader defaults = %+v", c.Reader)
	}
	if c.Workers < 1 || c.FoldWorkers != 1 {
		t.Errorf("workers = %d, fold_workers = %d", c.Workers, c.FoldWorkers)
	}
	if c.TrainerConfig().MaxIterations != 100 {
		t.Errorf("trainer = %+v", c.Trainer)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "postag.toml", `
workers = 3

[reader]
format = "xml"
encoding = "latin1"

[trainer]
c1 = 0.5
max_iterations = 20
`)
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Workers != 3 {
		t.Errorf("workers = %d, want 3", c.Workers)
	}
	f := c.Format()
	if f.Name != "xml" || f.Encoding != "latin1" || f.LemmaColumn != 1 {
		t.Errorf("format = %+v", f)
	}
	tc := c.TrainerConfig()
	if tc.C1 != 0.5 || tc.MaxIterations != 20 || tc.C2 != 0.01 {
		t.Errorf("trainer = %+v", tc)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "postag.yaml", "reader:\n  tag_column: 4\nfold_workers: 2\n")
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Reader.TagColumn != 4 || c.FoldWorkers != 2 {
		t.Errorf("config = %+v", c)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("POSTAG_TRAINER_C2", "0.25")
	t.Setenv("POSTAG_WORKERS", "5")
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if c.Trainer.C2 != 0.25 || c.Workers != 5 {
		t.Errorf("env overrides not applied: %+v", c)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
	path := writeFile(t, "bad.toml", "workers = 0\n")
	if _, err := Load(path); err == nil {
		t.Error("expected validation error for workers = 0")
	}
}
