package corpus

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// xmlReader reads BNC/TEI style markup:
//
//	<s><w lemma="dog" pos="NN">dogs</w><c pos="PUN">.</c></s>
//
// Tags are taken from the "tag", "c5" or "pos" attribute and lemmas from
// "lemma" or "hw", in that order of preference.
type xmlReader struct {
	sentences []Sentence
}

func newXMLReader(r io.Reader) (*xmlReader, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	xr := &xmlReader{}
	doc.Find("s").Each(func(_ int, s *goquery.Selection) {
		var sent Sentence
		s.Find("w, c").Each(func(_ int, w *goquery.Selection) {
			form := strings.TrimSpace(w.Text())
			if form == "" {
				return
			}
			sent = append(sent, &Token{
				Form:  form,
				Lemma: firstAttr(w, "lemma", "hw"),
				Tag:   firstAttr(w, "tag", "c5", "pos"),
			})
		})
		if len(sent) > 0 {
			xr.sentences = append(xr.sentences, sent)
		}
	})
	return xr, nil
}

func firstAttr(sel *goquery.Selection, names ...string) string {
	for _, name := range names {
		if v, ok := sel.Attr(name); ok && v != "" {
			return v
		}
	}
	return ""
}

func (r *xmlReader) Next() (Sentence, error) {
	if len(r.sentences) == 0 {
		return nil, io.EOF
	}
	s := r.sentences[0]
	r.sentences = r.sentences[1:]
	return s, nil
}

func (r *xmlReader) Close() error {
	r.sentences = nil
	return nil
}
