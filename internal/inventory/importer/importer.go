// Package importer reads stock spreadsheets (.csv / .xlsx) into validated
// records and drives a per-row apply function, counting failures instead of
// aborting the batch. It also writes sheets in a layout Parse reads back.
package importer

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"sarpras-backend/internal/inventory/ledger"
	"sarpras-backend/internal/platform/apierr"
	"sarpras-backend/internal/platform/metrics"
)

type Column int

const (
	ColCode Column = iota
	ColName
	ColQuantity
	ColUnit
	ColCondition
	ColYear
	colCount
)

// ヘッダー名の別名（小文字・空白/ハイフンは "_" に正規化して比較）
var headerAliases = map[string]Column{
	"code":            ColCode,
	"kode":            ColCode,
	"kode_barang":     ColCode,
	"name":            ColName,
	"nama":            ColName,
	"nama_barang":     ColName,
	"nama_peralatan":  ColName,
	"quantity":        ColQuantity,
	"qty":             ColQuantity,
	"jumlah":          ColQuantity,
	"stok":            ColQuantity,
	"unit":            ColUnit,
	"satuan":          ColUnit,
	"condition":       ColCondition,
	"kondisi":         ColCondition,
	"year":            ColYear,
	"tahun":           ColYear,
	"tahun_perolehan": ColYear,
}

// Record is one non-blank data row. Row is the 1-based position among data rows.
type Record struct {
	Row       int
	Code      string
	Name      string
	Quantity  int
	Unit      string
	Condition string
	Year      int
	Err       *RowError
}

// RowError: 1行分の不正。バッチ全体は止めない。
type RowError struct {
	Row     int
	Message string
}

func (e *RowError) Error() string          { return fmt.Sprintf("baris %d: %s", e.Row, e.Message) }
func (e *RowError) ErrorCode() apierr.Code { return apierr.CodeImportRow }

const (
	StatusOK = "ok"
	StatusNG = "ng"
)

type RowResult struct {
	Row    int    `json:"row"`
	Code   string `json:"code,omitempty"`
	Status string `json:"status"`
	Action string `json:"action,omitempty"` // created | updated
	Error  string `json:"error,omitempty"`
}

type Result struct {
	Total   int         `json:"total"`
	OKCount int         `json:"ok_count"`
	NGCount int         `json:"ng_count"`
	Results []RowResult `json:"results"`
}

// Parse はファイル名の拡張子で形式を判定して読み込む
func Parse(filename string, r io.Reader) ([]Record, error) {
	var (
		rows [][]string
		bad  map[int]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, bad, err = readCSV(r)
	case ".xlsx":
		rows, err = readXLSX(r)
	default:
		return nil, apierr.ErrInvalid("Format file harus .csv atau .xlsx")
	}
	if err != nil {
		return nil, apierr.ErrInvalid("File tidak dapat dibaca: " + err.Error())
	}
	return toRecords(rows, bad), nil
}

// Apply runs fn for every record. Each call is expected to be its own atomic scope.
// fn returns the action taken ("created" or "updated").
func Apply(ctx context.Context, kind string, records []Record, fn func(ctx context.Context, rec Record) (string, error)) Result {
	res := Result{Results: make([]RowResult, 0, len(records))}
	for _, rec := range records {
		res.Total++
		rr := RowResult{Row: rec.Row, Code: rec.Code}

		var err error
		if rec.Err != nil {
			err = rec.Err
		} else {
			rr.Action, err = fn(ctx, rec)
		}

		if err != nil {
			rr.Status = StatusNG
			rr.Action = ""
			rr.Error = apierr.FromErr(err).Error.Message
			res.NGCount++
			metrics.ImportRows.WithLabelValues(kind, StatusNG).Inc()
		} else {
			rr.Status = StatusOK
			res.OKCount++
			metrics.ImportRows.WithLabelValues(kind, StatusOK).Inc()
		}
		res.Results = append(res.Results, rr)
	}
	return res
}

// toRecords: bad は rows の添字 → 読み取れなかった行の理由
func toRecords(rows [][]string, bad map[int]string) []Record {
	if len(rows) == 0 {
		return nil
	}

	index, hasHeader := headerIndex(rows[0])
	offset := 0
	if hasHeader {
		offset = 1
	}

	var out []Record
	for i, row := range rows[offset:] {
		n := i + 1
		if msg, ok := bad[i+offset]; ok {
			out = append(out, Record{Row: n, Err: &RowError{Row: n, Message: msg}})
			continue
		}
		if isBlank(row) {
			continue
		}
		out = append(out, parseRow(n, row, index))
	}
	return out
}

// headerIndex は列名から位置を引く。認識できなければ固定順（code,name,quantity,unit,condition,year）。
func headerIndex(header []string) ([colCount]int, bool) {
	var idx [colCount]int
	for i := range idx {
		idx[i] = -1
	}

	found := 0
	for pos, h := range header {
		key := normalizeHeader(h)
		if col, ok := headerAliases[key]; ok && idx[col] < 0 {
			idx[col] = pos
			found++
		}
	}
	if found > 0 && idx[ColCode] >= 0 {
		return idx, true
	}

	for i := range idx {
		idx[i] = i
	}
	return idx, false
}

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	return s
}

func parseRow(n int, row []string, idx [colCount]int) Record {
	get := func(c Column) string {
		p := idx[c]
		if p < 0 || p >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[p])
	}

	rec := Record{
		Row:       n,
		Code:      get(ColCode),
		Name:      get(ColName),
		Unit:      get(ColUnit),
		Condition: get(ColCondition),
	}
	fail := func(format string, args ...any) Record {
		rec.Err = &RowError{Row: n, Message: fmt.Sprintf(format, args...)}
		return rec
	}

	if rec.Code == "" {
		return fail("kode barang kosong")
	}
	if rec.Name == "" {
		return fail("nama barang kosong")
	}

	qty, err := parseQuantity(get(ColQuantity))
	if err != nil {
		return fail("jumlah tidak valid: %q", get(ColQuantity))
	}
	rec.Quantity = qty

	if y := get(ColYear); y != "" {
		year, err := parseQuantity(y)
		if err != nil {
			return fail("tahun tidak valid: %q", y)
		}
		rec.Year = year
	}
	return rec
}

// parseQuantity は 0..ledger.MaxQuantity の整数のみ受け付ける。Excel が "12.0" と書き出すケースは許容。
func parseQuantity(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty")
	}
	if v, err := strconv.Atoi(s); err == nil {
		if v < 0 || v > ledger.MaxQuantity {
			return 0, fmt.Errorf("out of range")
		}
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || f > ledger.MaxQuantity || f != float64(int(f)) {
		return 0, fmt.Errorf("not a whole number")
	}
	return int(f), nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
