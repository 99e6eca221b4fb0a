package corpus

import (
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/net/html/charset"
)

// Reader yields sentences from one corpus file.
// Next returns io.EOF after the last sentence.
type Reader interface {
	Next() (Sentence, error)
	Close() error
}

// Opener opens a corpus file for reading.
type Opener func(path string) (Reader, error)

// Format describes how corpus files are laid out.
type Format struct {
	Name        string // "tsv" or "xml"
	FormColumn  int    // tsv only, zero-based
	LemmaColumn int    // tsv only, negative when absent
	TagColumn   int    // tsv only, negative when absent
	Encoding    string // charset label, empty for UTF-8
}

// DefaultFormat returns a tsv layout of form, lemma, tag columns.
func DefaultFormat() Format {
	return Format{
		Name:        "tsv",
		FormColumn:  0,
		LemmaColumn: 1,
		TagColumn:   2,
	}
}

// ErrUnknownFormat is returned for an unsupported corpus format name.
var ErrUnknownFormat = errors.New("unknown corpus format")

// NewOpener returns an Opener for the given format.
func NewOpener(f Format) (Opener, error) {
	if f.Encoding != "" {
		if _, name := charset.Lookup(f.Encoding); name == "" {
			return nil, errors.Newf("unknown corpus encoding %q", f.Encoding)
		}
	}
	switch strings.ToLower(f.Name) {
	case "", "tsv":
		if f.FormColumn < 0 {
			return nil, errors.Newf("invalid form column %d", f.FormColumn)
		}
		return func(path string) (Reader, error) {
			file, r, err := openDecoded(path, f.Encoding)
			if err != nil {
				return nil, err
			}
			return newTSVReader(file, r, f), nil
		}, nil
	case "xml":
		return func(path string) (Reader, error) {
			file, r, err := openDecoded(path, f.Encoding)
			if err != nil {
				return nil, err
			}
			defer func() { _ = file.Close() }()
			xr, err := newXMLReader(r)
			if err != nil {
				return nil, errors.Wrapf(err, "parse %s", path)
			}
			return xr, nil
		}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", f.Name)
	}
}

func openDecoded(path, encoding string) (*os.File, io.Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open corpus file")
	}
	if encoding == "" || strings.EqualFold(encoding, "utf-8") || strings.EqualFold(encoding, "utf8") {
		return file, file, nil
	}
	r, err := charset.NewReaderLabel(encoding, file)
	if err != nil {
		_ = file.Close()
		return nil, nil, errors.Wrapf(err, "decode %s", path)
	}
	return file, r, nil
}

// ReadAll reads every sentence of a file.
func ReadAll(open Opener, path string) ([]Sentence, error) {
	r, err := open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	var sentences []Sentence
	for {
		s, err := r.Next()
		if err == io.EOF {
			return sentences, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", path)
		}
		sentences = append(sentences, s)
	}
}
