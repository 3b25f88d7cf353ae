package tmx

import (
	"encoding/xml"
	"fmt"
	"io"

	"tmxmine/internal/domain"
)

// Survey scans a document once and tallies translation units and the
// language tags seen on their variants. Nothing is filtered or paired;
// this is a raw corpus overview.
func Survey(path string) (*domain.Survey, error) {
	doc, err := openDocument(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	dec := xml.NewDecoder(doc)
	dec.CharsetReader = charsetReader

	sv := &domain.Survey{Languages: make(map[string]int)}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return sv, nil
		}
		if err != nil {
			return nil, fmt.Errorf("malformed XML in %s: %w", path, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "tu":
			sv.Units++
		case "tuv":
			sv.Variants++
			lang := variantLang(start)
			if lang == "" {
				lang = "(untagged)"
			}
			sv.Languages[lang]++
		}
	}
}
