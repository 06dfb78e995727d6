// Package sheet decodes uploaded spreadsheets into tables.
//
// Two formats are supported: the zip based .xlsx format, read with excelize,
// and the legacy BIFF .xls format, read with extrame/xls. Only the first
// worksheet is used. Its first non-blank row is the header.
package sheet

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/leapstack-labs/assetops/internal/table"
)

// Format identifies a spreadsheet container format.
type Format string

// Supported formats.
const (
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
)

// Extensions lists the file extensions accepted by Read, for file pickers.
var Extensions = []string{".xlsx", ".xls"}

// DetectFormat picks the format from a file name.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return FormatXLSX, nil
	case ".xls":
		return FormatXLS, nil
	}
	return "", ErrUnsupportedFormat
}

// Read decodes the first worksheet of a spreadsheet into a table. Any failure
// is returned as a *ParseError.
func Read(r io.Reader, filename string) (*table.Table, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, newParseError(filename, err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, newParseError(filename, fmt.Errorf("failed to read upload: %w", err))
	}

	var rows [][]string
	switch format {
	case FormatXLS:
		rows, err = readXLS(bytes.NewReader(data))
	default:
		rows, err = readXLSX(bytes.NewReader(data))
	}
	if err != nil {
		return nil, newParseError(filename, err)
	}

	t, err := build(rows)
	if err != nil {
		return nil, newParseError(filename, err)
	}
	return t, nil
}

// build turns raw rows into a table: blank rows are dropped, the first
// remaining row becomes the header.
func build(rows [][]string) (*table.Table, error) {
	var kept [][]string
	for _, row := range rows {
		if !blank(row) {
			kept = append(kept, trimRight(row))
		}
	}
	if len(kept) == 0 {
		return nil, ErrEmptySheet
	}

	width := 0
	for _, row := range kept {
		if len(row) > width {
			width = len(row)
		}
	}

	header := headerNames(kept[0], width)
	return table.New(header, kept[1:]), nil
}

// headerNames fills blank header cells with "Unnamed: N" and suffixes
// duplicates with ".1", ".2" and so on.
func headerNames(row []string, width int) []string {
	names := make([]string, width)
	seen := make(map[string]int, width)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(row) {
			name = strings.TrimSpace(row[i])
		}
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		base := name
		for seen[name] > 0 {
			name = base + "." + strconv.Itoa(seen[base])
			seen[base]++
		}
		seen[name]++
		names[i] = name
	}
	return names
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func trimRight(row []string) []string {
	end := len(row)
	for end > 0 && strings.TrimSpace(row[end-1]) == "" {
		end--
	}
	return row[:end]
}
