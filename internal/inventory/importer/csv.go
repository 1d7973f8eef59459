package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// readCSV: UTF-8（BOM有無どちらも）を優先し、壊れていれば Windows-1252 として読む。
// 1行だけ壊れている場合は bad にその行位置を入れて読み続ける。
func readCSV(r io.Reader) (rows [][]string, bad map[int]string, err error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("reading csv: %w", err)
	}

	var dec transform.Transformer = unicode.BOMOverride(unicode.UTF8.NewDecoder())
	if !utf8.Valid(raw) {
		dec = charmap.Windows1252.NewDecoder()
	}

	cr := csv.NewReader(transform.NewReader(bytes.NewReader(raw), dec))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	// 3" や 24" のようなインチ表記をそのまま通す
	cr.LazyQuotes = true

	// Excel (id-ID) は ; 区切りで書き出すことがある
	if first, _, _ := bytes.Cut(raw, []byte("\n")); bytes.Count(first, []byte(";")) > bytes.Count(first, []byte(",")) {
		cr.Comma = ';'
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			if bad == nil {
				bad = map[int]string{}
			}
			bad[len(rows)] = "format CSV tidak valid: " + pe.Err.Error()
			rows = append(rows, nil)
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("parsing csv: %w", err)
		}
		rows = append(rows, rec)
	}
	return rows, bad, nil
}
