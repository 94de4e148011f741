package fileio

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrUnsupported is returned for file extensions no reader is registered for.
var ErrUnsupported = errors.New("unsupported file type")

// Table is the first sheet of an uploaded file: header row plus data rows.
// Every row has exactly len(Headers) cells.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Supported reports whether the extension of filename has a reader.
func Supported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls", ".csv":
		return true
	}
	return false
}

// ReadTable picks a reader by extension and returns the first sheet as a Table.
// headerRow is 1-based.
func ReadTable(r io.Reader, filename string, headerRow int) (Table, error) {
	if headerRow <= 0 {
		headerRow = 1
	}
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx":
		return readXLSX(r, headerRow)
	case ".xls":
		return readXLS(r, headerRow)
	case ".csv":
		return readCSV(r, headerRow)
	default:
		return Table{}, fmt.Errorf("%w: %s", ErrUnsupported, filename)
	}
}

// pickHeader takes the header row and fills blanks with "Column N".
func pickHeader(rows [][]string, headerRow int) []string {
	idx := headerRow - 1
	if idx < 0 || idx >= len(rows) {
		idx = 0
	}
	h := rows[idx]
	out := make([]string, len(h))
	for i, v := range h {
		if strings.TrimSpace(v) == "" {
			v = fmt.Sprintf("Column %d", i+1)
		}
		out[i] = v
	}
	return out
}

// rowsToTable pads or cuts rows to the header width and skips fully empty rows.
func rowsToTable(rows [][]string, headerRow int) Table {
	if len(rows) == 0 {
		return Table{}
	}
	headers := pickHeader(rows, headerRow)
	t := Table{Headers: headers}
	for r := headerRow; r < len(rows); r++ {
		rec := rows[r]
		row := make([]string, len(headers))
		empty := true
		for c := range headers {
			if c < len(rec) {
				row[c] = rec[c]
			}
			if strings.TrimSpace(row[c]) != "" {
				empty = false
			}
		}
		if !empty {
			t.Rows = append(t.Rows, row)
		}
	}
	return t
}
