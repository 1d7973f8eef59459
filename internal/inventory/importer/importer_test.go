package importer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"sarpras-backend/internal/platform/apierr"
)

func TestParseCSVWithHeaderAliases(t *testing.T) {
	body := "\ufeffKode Barang,Nama,Jumlah,Satuan,Kondisi,Tahun\n" +
		"EQ-1,Proyektor,3,Unit,Baik,2021\n" +
		"\n" +
		" , , , \n" +
		"EQ-2,Kursi,12.0,Buah,Rusak Ringan,2019\n"

	recs, err := Parse("barang.csv", strings.NewReader(body))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records (blank rows skipped), got %d", len(recs))
	}

	r := recs[0]
	if r.Code != "EQ-1" || r.Name != "Proyektor" || r.Quantity != 3 || r.Unit != "Unit" ||
		r.Condition != "Baik" || r.Year != 2021 || r.Err != nil {
		t.Errorf("unexpected first record %+v", r)
	}
	if recs[1].Quantity != 12 || recs[1].Condition != "Rusak Ringan" || recs[1].Year != 2019 {
		t.Errorf("unexpected second record %+v", recs[1])
	}
}

func TestParseCSVPositionalWithoutHeader(t *testing.T) {
	recs, err := Parse("data.CSV", strings.NewReader("K-1,Kertas A4,10,Rim\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(recs) != 1 || recs[0].Code != "K-1" || recs[0].Quantity != 10 || recs[0].Unit != "Rim" {
		t.Errorf("unexpected records %+v", recs)
	}
}

func TestParseCSVSemicolonAndWindows1252(t *testing.T) {
	src := "code;name;quantity\nK-1;Café filter;4\n"
	enc, err := charmap.Windows1252.NewEncoder().String(src)
	if err != nil {
		t.Fatal(err)
	}

	recs, err := Parse("bhp.csv", strings.NewReader(enc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(recs) != 1 || recs[0].Name != "Café filter" || recs[0].Quantity != 4 {
		t.Errorf("unexpected records %+v", recs)
	}
}

func TestParseRowErrors(t *testing.T) {
	body := "code,name,quantity\n" +
		",Tanpa Kode,1\n" +
		"K-2,,1\n" +
		"K-3,Pulpen,abc\n" +
		"K-4,Pensil,-2\n" +
		"K-5,Spidol,1.5\n"

	recs, err := Parse("x.csv", strings.NewReader(body))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(recs) != 5 {
		t.Fatalf("expected 5 records, got %d", len(recs))
	}
	for i, r := range recs {
		if r.Err == nil {
			t.Errorf("record %d: expected row error, got %+v", i, r)
			continue
		}
		if r.Err.Row != i+1 {
			t.Errorf("record %d: expected row %d, got %d", i, i+1, r.Err.Row)
		}
	}
}

func TestParseRejectsUnknownFormat(t *testing.T) {
	_, err := Parse("x.pdf", strings.NewReader(""))
	if apierr.CodeOf(err) != apierr.CodeInvalidArgument {
		t.Errorf("expected INVALID_ARGUMENT, got %v", err)
	}
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"code", "name", "quantity", "unit"},
		{"K-1", "Kertas", 10, "Rim"},
		{"K-2", "Tinta", "x", "Botol"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	recs, err := Parse("bhp.xlsx", bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Quantity != 10 || recs[0].Err != nil {
		t.Errorf("unexpected first record %+v", recs[0])
	}
	if recs[1].Err == nil || recs[1].Err.Row != 2 {
		t.Errorf("expected row 2 error, got %+v", recs[1])
	}
}

func TestApplyCountsFailuresWithoutAborting(t *testing.T) {
	var b strings.Builder
	b.WriteString("code,name,quantity\n")
	for i := 1; i <= 10; i++ {
		qty := "5"
		if i == 4 {
			qty = "empat"
		}
		b.WriteString("K-" + string(rune('0'+i%10)) + ",Item," + qty + "\n")
	}
	recs, err := Parse("x.csv", strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	applied := 0
	res := Apply(context.Background(), "consumable", recs, func(ctx context.Context, rec Record) (string, error) {
		applied++
		return "created", nil
	})

	if res.Total != 10 || res.OKCount != 9 || res.NGCount != 1 || applied != 9 {
		t.Errorf("unexpected result %+v (applied %d)", res, applied)
	}
	if res.Results[3].Status != StatusNG || res.Results[3].Row != 4 {
		t.Errorf("expected row 4 to fail, got %+v", res.Results[3])
	}
}

func TestApplyReportsApplyErrors(t *testing.T) {
	recs := []Record{{Row: 1, Code: "A", Name: "a", Quantity: 1}, {Row: 2, Code: "B", Name: "b", Quantity: 1}}
	res := Apply(context.Background(), "equipment", recs, func(ctx context.Context, rec Record) (string, error) {
		if rec.Code == "B" {
			return "", errors.New("db down")
		}
		return "updated", nil
	})
	if res.OKCount != 1 || res.NGCount != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.Results[1].Error != "internal error" {
		t.Errorf("internal error text leaked: %q", res.Results[1].Error)
	}
}

func exportSheet() Sheet {
	return Sheet{
		Name:   "Peralatan",
		Header: []string{"No", "Kode Barang", "Nama Peralatan", "Jumlah", "Kondisi", "Tahun Perolehan"},
		Rows: [][]any{
			{1, "EQ-1", "Proyektor, Epson", 3, "Baik", 2021},
			{2, "EQ-2", "Kursi \"Lipat\"", 0, "Rusak Ringan", ""},
		},
	}
}

func TestWriteCSVReadsBack(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, exportSheet()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\ufeff")) {
		t.Errorf("expected BOM prefix")
	}

	recs, err := Parse("export.csv", &buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Code != "EQ-1" || recs[0].Name != "Proyektor, Epson" || recs[0].Quantity != 3 || recs[0].Year != 2021 {
		t.Errorf("unexpected first record %+v", recs[0])
	}
	if recs[1].Name != "Kursi \"Lipat\"" || recs[1].Quantity != 0 || recs[1].Year != 0 || recs[1].Err != nil {
		t.Errorf("unexpected second record %+v", recs[1])
	}
}

func TestWriteXLSXReadsBack(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, exportSheet()); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	recs, err := Parse("export.xlsx", &buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(recs) != 2 || recs[0].Code != "EQ-1" || recs[0].Quantity != 3 || recs[1].Condition != "Rusak Ringan" {
		t.Errorf("unexpected records %+v", recs)
	}
}

func TestParseCSVKeepsBareQuotes(t *testing.T) {
	body := "kode,nama_barang,stok,satuan\n" +
		"A1,Kertas,10,rim\n" +
		"A2,Kabel 3\" hitam,5,m\n" +
		"A3,Monitor 24\",7,pcs\n"

	recs, err := Parse("bhp.csv", strings.NewReader(body))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	for _, r := range recs {
		if r.Err != nil {
			t.Errorf("row %d: unexpected error %v", r.Row, r.Err)
		}
	}
	if recs[1].Name != "Kabel 3\" hitam" || recs[2].Name != "Monitor 24\"" {
		t.Errorf("inch marks not kept: %q / %q", recs[1].Name, recs[2].Name)
	}
}

func TestUnreadableRowIsCountedNotFatal(t *testing.T) {
	rows := [][]string{
		{"code", "name", "quantity"},
		{"K-1", "Kertas", "1"},
		nil,
		{"K-3", "Pena", "2"},
	}
	recs := toRecords(rows, map[int]string{2: "format CSV tidak valid: x"})
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	if recs[1].Err == nil || recs[1].Err.Row != 2 {
		t.Fatalf("expected row 2 error, got %+v", recs[1])
	}

	res := Apply(context.Background(), "consumable", recs, func(ctx context.Context, rec Record) (string, error) {
		return "created", nil
	})
	if res.OKCount != 2 || res.NGCount != 1 {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestParseQuantityBounds(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"0", true},
		{"2147483647", true},
		{"2147483648", false},
		{"9223372036854775807", false},
		{"3e9", false},
		{"-1", false},
	}
	for _, tc := range cases {
		_, err := parseQuantity(tc.in)
		if (err == nil) != tc.ok {
			t.Errorf("parseQuantity(%q): err=%v, want ok=%v", tc.in, err, tc.ok)
		}
	}
}
