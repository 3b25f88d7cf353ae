package sink

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Matches"

// XLSXSink writes matched pairs to a spreadsheet via the excelize stream
// writer, which keeps row data on temporary disk storage instead of in
// memory. The workbook is only materialized at Close.
type XLSXSink struct {
	path string
	file *excelize.File
	sw   *excelize.StreamWriter
	row  int
}

func NewXLSXSink(path, sourceLang, targetLang string) (*XLSXSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to prepare workbook: %w", err)
	}
	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to prepare workbook: %w", err)
	}

	s := &XLSXSink{path: path, file: f, sw: sw, row: 1}
	header := []interface{}{
		fmt.Sprintf("Source (%s)", sourceLang),
		fmt.Sprintf("Target (%s)", targetLang),
		"Matched_Keywords",
	}
	if err := s.writeCells(header); err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

func (s *XLSXSink) WriteRow(source, target, matchedKeywords string) error {
	return s.writeCells([]interface{}{source, target, matchedKeywords})
}

func (s *XLSXSink) writeCells(cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		return fmt.Errorf("failed to write row to %s: %w", s.path, err)
	}
	if err := s.sw.SetRow(cell, cells); err != nil {
		return fmt.Errorf("failed to write row to %s: %w", s.path, err)
	}
	s.row++
	return nil
}

func (s *XLSXSink) Path() string {
	return s.path
}

func (s *XLSXSink) Close() error {
	defer s.file.Close()
	if err := s.sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", s.path, err)
	}
	if err := s.file.SaveAs(s.path); err != nil {
		return fmt.Errorf("failed to save %s: %w", s.path, err)
	}
	return nil
}
