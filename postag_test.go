package postag

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/happyhackingspace/postag/internal/corpus"
	"github.com/happyhackingspace/postag/internal/feature"
)

const testDescriptor = `slots:
  - id: 0
    document_frequency: 0
    feature_cutoff: 0
    label_cutoff: 0
    ambiguity_threshold: 0.6
  - id: 1
    document_frequency: 1
    feature_cutoff: 0
    label_cutoff: 0
    ambiguity_threshold: 0.6
templates:
  - form[0]
  - lemma[0]
  - lemma[-1]
  - amb[0]
  - tag[-1]
  - tag[-2]+tag[-1]
  - suf2[0]
  - shape[0]
`

var testShards = []string{
	"The\tthe\tDET\ndog\tdog\tNOUN\nruns\trun\tVERB\n.\t.\tPUNCT\n\nA\ta\tDET\ncat\tcat\tNOUN\nsleeps\tsleep\tVERB\n.\t.\tPUNCT\n",
	"The\tthe\tDET\ncat\tcat\tNOUN\nruns\trun\tVERB\n.\t.\tPUNCT\n\nThe\tthe\tDET\ndog\tdog\tNOUN\nbarks\tbark\tVERB\n.\t.\tPUNCT\n",
	"A\ta\tDET\nbird\tbird\tNOUN\nsings\tsing\tVERB\n.\t.\tPUNCT\n\nA\ta\tDET\nrun\trun\tNOUN\nends\tend\tVERB\n.\t.\tPUNCT\n",
}

func writeCorpus(t *testing.T, shards []string) *corpus.Corpus {
	t.Helper()
	dir := t.TempDir()
	for i, content := range shards {
		path := filepath.Join(dir, fmt.Sprintf("shard%02d.tsv", i))
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	open, err := corpus.NewOpener(corpus.DefaultFormat())
	if err != nil {
		t.Fatal(err)
	}
	c, err := corpus.Load(dir, open)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func testOptions(t *testing.T) Options {
	t.Helper()
	d, err := feature.Parse([]byte(testDescriptor))
	if err != nil {
		t.Fatal(err)
	}
	return Options{Descriptor: d, Workers: 2, FoldWorkers: 2}
}

func readSentences(t *testing.T, c *corpus.Corpus, shard int) []corpus.Sentence {
	t.Helper()
	sentences, err := corpus.ReadAll(c.Open, c.Files[shard])
	if err != nil {
		t.Fatal(err)
	}
	return sentences
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input string
		want  Mode
		slots []int
	}{
		{"general", ModeGeneral, []int{SlotGeneral}},
		{"Domain", ModeDomain, []int{SlotDomain}},
		{"dynamic", ModeDynamic, []int{SlotDomain, SlotGeneral}},
	}
	for _, tt := range tests {
		m, err := ParseMode(tt.input)
		if err != nil {
			t.Errorf("ParseMode(%q): %v", tt.input, err)
			continue
		}
		if m != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.input, m, tt.want)
		}
		if got := m.Slots(); fmt.Sprint(got) != fmt.Sprint(tt.slots) {
			t.Errorf("%v.Slots() = %v, want %v", m, got, tt.slots)
		}
	}
	if _, err := ParseMode("both"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestFold(t *testing.T) {
	var none Fold
	if none.Excludes(0) {
		t.Error("nil fold should exclude nothing")
	}
	f := NewFold(2, 5)
	if !f.Excludes(2) || !f.Excludes(5) || f.Excludes(3) {
		t.Errorf("fold = %v", f)
	}
}

func TestScanFilesOrder(t *testing.T) {
	c := writeCorpus(t, testShards)
	got, err := scanFiles(context.Background(), c, NewFold(1), 3, func(sentences []corpus.Sentence) (string, error) {
		return sentences[1][1].Form, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if fmt.Sprint(got) != "[cat run]" {
		t.Errorf("results = %v, want [cat run]", got)
	}
}

func TestScanFilesMissingShard(t *testing.T) {
	c := writeCorpus(t, testShards)
	c.Files = append(c.Files, filepath.Join(t.TempDir(), "missing.tsv"))
	_, err := scanFiles(context.Background(), c, nil, 2, func([]corpus.Sentence) (int, error) { return 0, nil })
	if err == nil {
		t.Fatal("expected error for missing shard")
	}
}
