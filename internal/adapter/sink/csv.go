package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// CSVSink writes matched pairs as UTF-8 CSV rows with the standard
// quote-escaping rules of encoding/csv. The header row is written on
// creation; rows are buffered and flushed on Close.
type CSVSink struct {
	path string
	file *os.File
	w    *csv.Writer
}

// NewCSVSink creates the output file (and any missing parent
// directories) and writes the header row.
func NewCSVSink(path, sourceLang, targetLang string) (*CSVSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	header := []string{
		fmt.Sprintf("Source (%s)", sourceLang),
		fmt.Sprintf("Target (%s)", targetLang),
		"Matched_Keywords",
	}
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header to %s: %w", path, err)
	}

	return &CSVSink{path: path, file: f, w: w}, nil
}

func (s *CSVSink) WriteRow(source, target, matchedKeywords string) error {
	if err := s.w.Write([]string{source, target, matchedKeywords}); err != nil {
		return fmt.Errorf("failed to write row to %s: %w", s.path, err)
	}
	return nil
}

func (s *CSVSink) Path() string {
	return s.path
}

func (s *CSVSink) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		s.file.Close()
		return fmt.Errorf("failed to flush %s: %w", s.path, err)
	}
	return s.file.Close()
}
