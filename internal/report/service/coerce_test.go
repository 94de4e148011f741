package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"delivery-report/internal/fileio"
	"delivery-report/internal/report/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	cases := map[string]time.Time{
		"2025-01-01":                date(2025, 1, 1),
		"2025/01/02":                date(2025, 1, 2),
		"45658":                     date(2025, 1, 1),
		"1/2/2025":                  date(2025, 1, 2),
		"13/01/2025":                date(2025, 1, 13),
		"05-Mar-2025":               date(2025, 3, 5),
		"2025-01-01T00:00:00Z":      date(2025, 1, 1),
		"2025-01-01T23:00:00-05:00": date(2025, 1, 1),
	}
	for in, want := range cases {
		got, ok := ParseDate(in)
		require.True(t, ok, in)
		require.True(t, want.Equal(day(got)), "%s -> %s", in, got)
	}
	for _, bad := range []string{"", "abc", "32/13/2025", "-5"} {
		_, ok := ParseDate(bad)
		require.False(t, ok, bad)
	}
}

func TestParseDate_DropsOffset(t *testing.T) {
	got, ok := ParseDate("2025-03-04T22:15:00+07:00")
	require.True(t, ok)
	require.Equal(t, time.Date(2025, 3, 4, 22, 15, 0, 0, time.UTC), got)
}

func coerceFixture(rows [][]string) (fileio.Table, []string, model.Schema) {
	tbl := fileio.Table{Headers: []string{"DP Date", "Qty", "Sales Man", "Trip No"}, Rows: rows}
	headers := NormalizeHeaders(tbl.Headers)
	return tbl, headers, Resolve(headers, model.DefaultAliases())
}

func TestCoerce_DropsRowsWithInvalidDates(t *testing.T) {
	var rows [][]string
	for i := 0; i < 10; i++ {
		d := "2025-01-0" + string(rune('1'+i%9))
		if i == 3 || i == 7 {
			d = "not a date"
		}
		rows = append(rows, []string{d, "10", "S", "T"})
	}
	tbl, headers, schema := coerceFixture(rows)

	ds, dropped := Coerce(tbl, headers, schema)
	require.Equal(t, 8, ds.Len())
	require.Equal(t, 2, dropped)
	for _, rec := range ds.Records {
		require.Equal(t, 10.0, rec.Qty)
		require.Equal(t, "10", rec.Cells[1])
	}
}

func TestCoerce_InvalidQuantityBecomesZero(t *testing.T) {
	tbl, headers, schema := coerceFixture([][]string{
		{"2025-01-01", "N/A", "S", "T1"},
		{"2025-01-01", "", "S", "T2"},
		{"2025-01-01", "1,250.5", "S", "T3"},
	})
	ds, dropped := Coerce(tbl, headers, schema)
	require.Zero(t, dropped)
	require.Equal(t, 3, ds.Len())
	require.Equal(t, 0.0, ds.Records[0].Qty)
	require.Equal(t, 0.0, ds.Records[1].Qty)
	require.Equal(t, 1250.5, ds.Records[2].Qty)
}
