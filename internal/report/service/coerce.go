package service

import (
	"strconv"
	"strings"
	"time"

	excelize "github.com/xuri/excelize/v2"

	"delivery-report/internal/fileio"
	"delivery-report/internal/report/model"
	"delivery-report/internal/utils"
)

// Excel serials outside (0, 2958466) are not dates (2958465 is 9999-12-31).
const maxExcelSerial = 2958466

// Month-first slash layouts win over day-first ones for ambiguous values.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"20060102",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"1/2/06",
	"2/1/2006",
	"2.1.2006",
	"2-Jan-2006",
	"2-Jan-06",
	"02 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseDate parses an Excel serial number or one of the accepted textual layouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f > 0 && f < maxExcelSerial {
			t, err := excelize.ExcelDateToTime(f, false)
			if err == nil {
				return t, true
			}
		}
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return wallClock(t), true
		}
	}
	return time.Time{}, false
}

// ParseQuantity returns 0 for anything that is not a number.
func ParseQuantity(s string) float64 {
	f, ok := utils.ParseNumber(s)
	if !ok {
		return 0
	}
	return f
}

// Coerce parses the date and quantity columns. Rows with an unparseable date are
// dropped and counted; unparseable quantities become 0 and the row is kept.
func Coerce(tbl fileio.Table, headers []string, schema model.Schema) (model.Dataset, int) {
	ds := model.NewDataset(headers, nil)
	dateCol, _ := schema.Column(model.RoleDate)
	qtyCol, _ := schema.Column(model.RoleQuantity)
	di, qi := ds.ColumnIndex(dateCol), ds.ColumnIndex(qtyCol)

	records := make([]model.Record, 0, len(tbl.Rows))
	dropped := 0
	for _, row := range tbl.Rows {
		var cell string
		if di >= 0 && di < len(row) {
			cell = row[di]
		}
		d, ok := ParseDate(cell)
		if !ok {
			dropped++
			continue
		}
		var qty float64
		if qi >= 0 && qi < len(row) {
			qty = ParseQuantity(row[qi])
		}
		records = append(records, model.Record{Date: d, Qty: qty, Cells: row})
	}
	return ds.WithRecords(records), dropped
}

// wallClock keeps the local date and time of t and drops its offset, so a delivery
// stamped late in the evening stays on the day it was written for.
func wallClock(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// day truncates t to its calendar day in UTC.
func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
