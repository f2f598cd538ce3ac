// Package timetable extracts schedule entries from uploaded timetable files.
package timetable

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

const maxXLSRows = 100000

// LoadGrid reads a timetable file into a 2-D grid of cell strings.
// Spreadsheet workbooks use the first sheet only.
func LoadGrid(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx":
		return loadXLSX(data)
	case ".xls":
		return loadXLS(data)
	case ".csv":
		return loadCSV(data)
	default:
		return nil, fmt.Errorf("%w %q (expected .xlsx, .xls, or .csv)", ErrUnsupportedFormat, ext)
	}
}

func loadXLSX(data []byte) ([][]string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for a read-only workbook.
			_ = cerr
		}
	}()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("%w: no worksheet found", ErrMalformedTable)
	}
	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: worksheet is empty", ErrMalformedTable)
	}
	return rows, nil
}

func loadXLS(data []byte) ([][]string, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	if workbook.NumSheets() == 0 {
		return nil, fmt.Errorf("%w: no worksheet found", ErrMalformedTable)
	}
	rows := workbook.ReadAllCells(maxXLSRows)
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: worksheet is empty", ErrMalformedTable)
	}
	return rows, nil
}

func loadCSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrMalformedTable)
	}
	return rows, nil
}

// cellValue returns the trimmed cell at idx, or "" when out of range.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
