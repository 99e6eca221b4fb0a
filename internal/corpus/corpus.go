package corpus

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// Corpus is an ordered list of shard files and the opener that reads them.
// A shard's index in Files identifies it across training passes.
type Corpus struct {
	Files []string
	Open  Opener
}

// ErrEmptyCorpus is returned when a training directory has no files.
var ErrEmptyCorpus = errors.New("no corpus files found")

// Load lists the regular files of dir in sorted order.
func Load(dir string, open Opener) (*Corpus, error) {
	files, err := List(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.Wrapf(ErrEmptyCorpus, "in %s", dir)
	}
	return &Corpus{Files: files, Open: open}, nil
}

// List returns the sorted paths of the regular, non-hidden files in dir.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "list corpus directory")
	}
	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
