package corpus

import (
	"bufio"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

const maxLineSize = 1024 * 1024

// tsvReader reads one token per line with tab-separated columns;
// a blank line ends a sentence and lines starting with '#' are comments.
type tsvReader struct {
	closer  io.Closer
	scanner *bufio.Scanner
	format  Format
	line    int
}

func newTSVReader(closer io.Closer, r io.Reader, f Format) *tsvReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	return &tsvReader{closer: closer, scanner: scanner, format: f}
}

func (r *tsvReader) Next() (Sentence, error) {
	var sent Sentence
	for r.scanner.Scan() {
		r.line++
		line := strings.TrimRight(r.scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			if len(sent) > 0 {
				return sent, nil
			}
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		tok, err := r.parse(strings.Split(line, "\t"))
		if err != nil {
			return nil, err
		}
		sent = append(sent, tok)
	}
	if err := r.scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "line %d", r.line)
	}
	if len(sent) > 0 {
		return sent, nil
	}
	return nil, io.EOF
}

func (r *tsvReader) parse(fields []string) (*Token, error) {
	f := r.format
	if f.FormColumn >= len(fields) {
		return nil, errors.Newf("line %d: %d columns, form column is %d", r.line, len(fields), f.FormColumn)
	}
	tok := &Token{Form: fields[f.FormColumn]}
	if f.LemmaColumn >= 0 && f.LemmaColumn < len(fields) {
		tok.Lemma = fields[f.LemmaColumn]
	}
	if f.TagColumn >= 0 && f.TagColumn < len(fields) {
		tok.Tag = fields[f.TagColumn]
	}
	return tok, nil
}

func (r *tsvReader) Close() error {
	return r.closer.Close()
}
