package tmx

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// openDocument opens a TMX file for streaming, transparently decompressing
// gzip and stripping a UTF-16/UTF-8 byte order mark.
func openDocument(path string) (io.ReadCloser, error) {
	mime, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to probe %s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	var r io.Reader = f
	switch {
	case mime.Is("application/gzip"):
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to decompress %s: %w", path, err)
		}
		r = zr
	case mime.Is("text/xml") || mime.Is("application/xml") || strings.HasPrefix(mime.String(), "text/"):
	default:
		f.Close()
		return nil, fmt.Errorf("%s does not look like a TMX document (detected %s)", path, mime)
	}

	// A BOM both breaks the XML tokenizer and signals UTF-16, so normalize
	// to UTF-8 up front. BOM-less input passes through untouched.
	r = transform.NewReader(r, unicode.BOMOverride(encoding.Nop.NewDecoder()))

	return &document{Reader: r, file: f}, nil
}

type document struct {
	io.Reader
	file *os.File
}

func (d *document) Close() error { return d.file.Close() }

// charsetReader resolves single-byte encodings declared in the XML prolog.
// UTF-8 and UTF-16 declarations pass through: the BOM override in
// openDocument has already normalized those to UTF-8.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "utf-8", "utf8", "utf-16", "utf-16le", "utf-16be":
		return input, nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", charset, err)
	}
	return enc.NewDecoder().Reader(input), nil
}
