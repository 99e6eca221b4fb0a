package postag

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/happyhackingspace/postag/internal/feature"
	"github.com/happyhackingspace/postag/tagger"
	"github.com/klauspost/compress/zip"
)

// Artifact entry names.
const (
	EntryConfiguration = "CONFIGURATION"
	EntryFeature       = "FEATURE"
	EntryModel         = "MODEL"
)

// Artifact is the packaged result of a training run.
type Artifact struct {
	Descriptor *feature.Descriptor
	Taggers    []*tagger.Tagger // in slot order
	Threshold  float64          // meaningful only with two taggers
}

// Selector returns the dynamic selector of a two-model artifact.
func (a *Artifact) Selector() (*Selector, error) {
	if len(a.Taggers) != 2 {
		return nil, errors.Newf("artifact has %d model(s), dynamic selection needs 2", len(a.Taggers))
	}
	return NewSelector(a.Taggers[SlotDomain], a.Taggers[SlotGeneral], a.Threshold), nil
}

// Save writes the artifact to path. The zip is written to a temporary file
// next to path and renamed into place once complete.
func (a *Artifact) Save(path string) error {
	if len(a.Taggers) == 0 || len(a.Taggers) > 2 {
		return errors.Newf("cannot save %d models", len(a.Taggers))
	}
	if a.Descriptor == nil {
		return errNoDescriptor
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrapf(err, "create artifact")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := tmp.Chmod(0644); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "create artifact")
	}
	if err := a.write(tmp); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "write artifact %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "close artifact")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "rename artifact")
	}
	return nil
}

func (a *Artifact) write(w io.Writer) error {
	zw := zip.NewWriter(w)

	if len(a.Taggers) == 2 {
		f, err := zw.Create(EntryConfiguration)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(f, strconv.FormatFloat(a.Threshold, 'f', -1, 64)); err != nil {
			return err
		}
	}

	f, err := zw.Create(EntryFeature)
	if err != nil {
		return err
	}
	if _, err := f.Write(a.Descriptor.Source); err != nil {
		return err
	}

	f, err = zw.Create(EntryModel)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(f, len(a.Taggers)); err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	for _, t := range a.Taggers {
		if err := enc.Encode(t); err != nil {
			return errors.Wrapf(err, "encode model")
		}
	}
	return zw.Close()
}

// LoadArtifact reads an artifact written by Save.
func LoadArtifact(path string) (*Artifact, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open artifact")
	}
	defer func() { _ = zr.Close() }()

	entries := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		entries[f.Name] = f
	}
	read := func(name string) ([]byte, error) {
		f, ok := entries[name]
		if !ok {
			return nil, errors.Newf("artifact %s: missing %s entry", path, name)
		}
		rc, err := f.Open()
		if err != nil {
			return nil, errors.Wrapf(err, "open %s entry", name)
		}
		defer func() { _ = rc.Close() }()
		return io.ReadAll(rc)
	}

	src, err := read(EntryFeature)
	if err != nil {
		return nil, err
	}
	d, err := feature.Parse(src)
	if err != nil {
		return nil, errors.Wrapf(err, "artifact %s", path)
	}
	art := &Artifact{Descriptor: d}

	data, err := read(EntryModel)
	if err != nil {
		return nil, err
	}
	if art.Taggers, err = decodeTaggers(data, d); err != nil {
		return nil, errors.Wrapf(err, "artifact %s", path)
	}

	if len(art.Taggers) == 2 {
		data, err := read(EntryConfiguration)
		if err != nil {
			return nil, err
		}
		art.Threshold, err = strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "artifact %s: threshold", path)
		}
	}
	return art, nil
}

func decodeTaggers(data []byte, d *feature.Descriptor) ([]*tagger.Tagger, error) {
	r := bufio.NewReader(bytes.NewReader(data))
	line, err := r.ReadString('\n')
	if err != nil {
		return nil, errors.Wrap(err, "model count")
	}
	count, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || count < 1 || count > 2 {
		return nil, errors.Newf("invalid model count %q", strings.TrimSpace(line))
	}

	dec := json.NewDecoder(r)
	taggers := make([]*tagger.Tagger, count)
	for i := range taggers {
		var t tagger.Tagger
		if err := dec.Decode(&t); err != nil {
			return nil, errors.Wrapf(err, "decode model %d", i)
		}
		if t.Lexicon == nil || t.Model == nil {
			return nil, errors.Newf("model %d is incomplete", i)
		}
		t.Bind(d.Templates)
		taggers[i] = &t
	}
	return taggers, nil
}
