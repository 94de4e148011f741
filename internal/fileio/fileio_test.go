package fileio

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf := &bytes.Buffer{}
	_, err := f.WriteTo(buf)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return buf
}

func TestReadXLSX_FirstSheetPadsAndSkipsEmpty(t *testing.T) {
	buf := buildWorkbook(t, [][]any{
		{"DP Date", "Qty", "", "Sales Man"},
		{"2025-01-01", 10, "x", "Budi"},
		{nil, nil, nil, nil},
		{"2025-01-02", 5},
	})

	tbl, err := ReadTable(buf, "Report.XLSX", 1)
	require.NoError(t, err)
	require.Equal(t, []string{"DP Date", "Qty", "Column 3", "Sales Man"}, tbl.Headers)
	require.Len(t, tbl.Rows, 2)
	require.Equal(t, []string{"2025-01-01", "10", "x", "Budi"}, tbl.Rows[0])
	require.Equal(t, []string{"2025-01-02", "5", "", ""}, tbl.Rows[1])
}

func TestReadXLSX_DateCellsComeBackAsSerials(t *testing.T) {
	buf := buildWorkbook(t, [][]any{
		{"DP Date"},
		{time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	})
	tbl, err := ReadTable(buf, "r.xlsx", 1)
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)
	require.Equal(t, "45658", tbl.Rows[0][0])
}

func TestReadXLSX_HeaderRow(t *testing.T) {
	buf := buildWorkbook(t, [][]any{
		{"Daily delivery report"},
		{"Area", "Qty"},
		{"North", 3},
	})
	tbl, err := ReadTable(buf, "r.xlsx", 2)
	require.NoError(t, err)
	require.Equal(t, []string{"Area", "Qty"}, tbl.Headers)
	require.Equal(t, [][]string{{"North", "3"}}, tbl.Rows)
}

func TestReadXLSX_Corrupt(t *testing.T) {
	_, err := ReadTable(strings.NewReader("not a zip"), "r.xlsx", 1)
	require.Error(t, err)
}

func TestReadTable_Unsupported(t *testing.T) {
	_, err := ReadTable(strings.NewReader(""), "r.pdf", 1)
	require.ErrorIs(t, err, ErrUnsupported)
	require.False(t, Supported("r.pdf"))
	require.True(t, Supported("R.XLS"))
}

func TestReadCSV_SemicolonAndBOM(t *testing.T) {
	body := "\xEF\xBB\xBFArea;Qty\nNorth;1,5\n;\nSouth;2\n"
	tbl, err := ReadTable(strings.NewReader(body), "r.csv", 1)
	require.NoError(t, err)
	require.Equal(t, []string{"Area", "Qty"}, tbl.Headers)
	require.Equal(t, [][]string{{"North", "1,5"}, {"South", "2"}}, tbl.Rows)
}

func TestReadCSV_UTF8(t *testing.T) {
	body := "Customer,Qty\nCafé Jaya,1\nCrème Konstruksi,2\n"
	tbl, err := ReadTable(strings.NewReader(body), "r.csv", 1)
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 2)
	require.Equal(t, "1", tbl.Rows[0][1])
}

func TestWriteXLSX_RoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	rows := [][]any{
		{"North", 12.5},
		{"South", 3},
	}
	require.NoError(t, WriteXLSX(buf, "Report", []string{"Area", "Qty"}, rows))

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()
	require.Equal(t, "Report", f.GetSheetName(0))
	got, err := f.GetRows("Report")
	require.NoError(t, err)
	require.Equal(t, [][]string{{"Area", "Qty"}, {"North", "12.5"}, {"South", "3"}}, got)
}

func TestCSVDelimiter(t *testing.T) {
	require.Equal(t, ';', csvDelimiter([]byte("a;b;c\n1,5;2;3")))
	require.Equal(t, ',', csvDelimiter([]byte("a,b\n1;2")))
	require.Equal(t, ',', csvDelimiter(nil))
}
