package fileio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	xls "github.com/extrame/xls"
)

// xlsCharsets are tried in order for the string table of legacy workbooks.
var xlsCharsets = []string{"utf-8", "windows-1252"}

// xlsProbeCols bounds the column scan; Row.LastCol() is unreliable on ERP exports.
const xlsProbeCols = 512

func openXLS(b []byte) (*xls.WorkBook, error) {
	var errs []error
	for _, cs := range xlsCharsets {
		wb, err := xls.OpenReader(bytes.NewReader(b), cs)
		if err == nil && wb != nil {
			return wb, nil
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", cs, err))
		}
	}
	if len(errs) == 0 {
		return nil, errors.New("xls: cannot open workbook")
	}
	return nil, errors.Join(errs...)
}

// sheetWidth is the rightmost non-empty column over all rows, at least 1.
func sheetWidth(sheet *xls.WorkSheet) int {
	width := 1
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}
		for j := xlsProbeCols - 1; j >= width; j-- {
			if strings.TrimSpace(row.Col(j)) != "" {
				width = j + 1
				break
			}
		}
	}
	return width
}

// readXLS reads the first sheet of a BIFF workbook.
func readXLS(r io.Reader, headerRow int) (Table, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Table{}, err
	}
	wb, err := openXLS(b)
	if err != nil {
		return Table{}, err
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return Table{}, nil
	}

	width := sheetWidth(sheet)
	grid := make([][]string, int(sheet.MaxRow)+1)
	for i := range grid {
		cells := make([]string, width)
		if row := sheet.Row(i); row != nil {
			for j := range cells {
				cells[j] = row.Col(j)
			}
		}
		grid[i] = cells
	}
	return rowsToTable(grid, headerRow), nil
}
