package fileio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// csvSniffLen is how much of the file feeds charset and delimiter detection.
const csvSniffLen = 2048

// decodeCSV strips a UTF-8 BOM and wraps the reader in a decoder for single-byte
// charsets detected by chardet. It returns the decoded reader and the sniffed prefix.
func decodeCSV(r io.Reader) (io.Reader, []byte) {
	br := bufio.NewReaderSize(r, csvSniffLen)
	sniff, _ := br.Peek(csvSniffLen)
	if bytes.HasPrefix(sniff, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
		return br, sniff[len(utf8BOM):]
	}
	if len(sniff) == 0 {
		return br, sniff
	}
	det, err := chardet.NewTextDetector().DetectBest(sniff)
	if err != nil || det == nil {
		return br, sniff
	}
	switch strings.ToLower(det.Charset) {
	case "windows-1251":
		return transform.NewReader(br, charmap.Windows1251.NewDecoder()), sniff
	case "windows-1252", "iso-8859-1":
		return transform.NewReader(br, charmap.Windows1252.NewDecoder()), sniff
	}
	return br, sniff
}

// csvDelimiter picks ';' when the first line has more semicolons than commas.
func csvDelimiter(sniff []byte) rune {
	line, _, _ := bytes.Cut(sniff, []byte("\n"))
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}

func readCSV(r io.Reader, headerRow int) (Table, error) {
	dec, sniff := decodeCSV(r)

	cr := csv.NewReader(dec)
	cr.Comma = csvDelimiter(sniff)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, err
		}
		rows = append(rows, rec)
	}
	return rowsToTable(rows, headerRow), nil
}
