package tmx

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"tmxmine/internal/domain"
)

const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

// Iterator streams aligned sentence pairs out of a TMX document one
// translation unit at a time. Only the unit currently being decoded is
// held in memory, so multi-gigabyte files are processed in constant space.
//
// The sequence is single-pass: once Next has returned ok=false or an
// error, the iterator is exhausted.
type Iterator struct {
	path   string
	src    string
	tgt    string
	dec    *xml.Decoder
	closer io.Closer
	done   bool
}

// NewIterator opens path for streaming. sourceLang and targetLang are
// matched as substrings of each variant's lowercased language tag, so
// "eu" also picks up regional tags like "eu-ES".
func NewIterator(path, sourceLang, targetLang string) (*Iterator, error) {
	doc, err := openDocument(path)
	if err != nil {
		return nil, err
	}

	dec := xml.NewDecoder(doc)
	dec.CharsetReader = charsetReader

	return &Iterator{
		path:   path,
		src:    strings.ToLower(sourceLang),
		tgt:    strings.ToLower(targetLang),
		dec:    dec,
		closer: doc,
	}, nil
}

// Next returns the next translation unit that has usable text on both
// sides. Units missing either side are skipped silently.
func (it *Iterator) Next() (domain.Pair, bool, error) {
	if it.done {
		return domain.Pair{}, false, nil
	}

	for {
		tok, err := it.dec.Token()
		if err == io.EOF {
			it.done = true
			return domain.Pair{}, false, nil
		}
		if err != nil {
			it.done = true
			return domain.Pair{}, false, fmt.Errorf("malformed XML in %s: %w", it.path, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "tu" {
			continue
		}

		pair, ok, err := it.readUnit()
		if err != nil {
			it.done = true
			return domain.Pair{}, false, fmt.Errorf("malformed XML in %s: %w", it.path, err)
		}
		if ok {
			return pair, true, nil
		}
	}
}

func (it *Iterator) Close() error {
	return it.closer.Close()
}

// readUnit consumes tokens up to the closing tu tag and classifies each
// variant's text by language. When both configured language substrings
// would match one tag, the source check runs first and wins; a later
// variant matching the same side overwrites an earlier one.
func (it *Iterator) readUnit() (domain.Pair, bool, error) {
	var source, target string

	for {
		tok, err := it.dec.Token()
		if err != nil {
			return domain.Pair{}, false, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "tuv" {
				if err := it.dec.Skip(); err != nil {
					return domain.Pair{}, false, err
				}
				continue
			}
			lang, text, err := it.readVariant(t)
			if err != nil {
				return domain.Pair{}, false, err
			}
			if text == "" {
				continue
			}
			if strings.Contains(lang, it.src) {
				source = text
			} else if strings.Contains(lang, it.tgt) {
				target = text
			}
		case xml.EndElement:
			if t.Name.Local == "tu" {
				return domain.Pair{Source: source, Target: target}, source != "" && target != "", nil
			}
		}
	}
}

// readVariant consumes one tuv element and returns its language tag and
// trimmed segment text. Only the first seg child is consulted.
func (it *Iterator) readVariant(start xml.StartElement) (lang, text string, err error) {
	lang = variantLang(start)
	seen := false

	for {
		tok, err := it.dec.Token()
		if err != nil {
			return "", "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "seg" && !seen {
				seen = true
				text, err = it.readSegment()
				if err != nil {
					return "", "", err
				}
			} else if err := it.dec.Skip(); err != nil {
				return "", "", err
			}
		case xml.EndElement:
			return lang, text, nil
		}
	}
}

// readSegment consumes one seg element and extracts its text: the
// character data preceding the first child element when any exists,
// otherwise all descendant character data in document order. Inline
// markup like bpt/ept/ph is traversed, not preserved.
func (it *Iterator) readSegment() (string, error) {
	var direct, all strings.Builder
	sawChild := false
	depth := 0

	for {
		tok, err := it.dec.Token()
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.CharData:
			all.Write(t)
			if !sawChild {
				direct.Write(t)
			}
		case xml.StartElement:
			sawChild = true
			depth++
		case xml.EndElement:
			if depth > 0 {
				depth--
				continue
			}
			text := all.String()
			if direct.Len() > 0 {
				text = direct.String()
			}
			return strings.TrimSpace(text), nil
		}
	}
}

// variantLang resolves a variant's language tag: the namespace-qualified
// xml:lang attribute first, a plain lang attribute as fallback, empty
// when neither is present. Always lowercased.
func variantLang(start xml.StartElement) string {
	var qualified, plain string
	for _, attr := range start.Attr {
		if attr.Name.Local != "lang" {
			continue
		}
		switch attr.Name.Space {
		case xmlNamespace, "xml":
			qualified = attr.Value
		case "":
			plain = attr.Value
		}
	}
	if qualified != "" {
		return strings.ToLower(qualified)
	}
	return strings.ToLower(plain)
}
