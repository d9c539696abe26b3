package batch

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexiusacademia/goshaft/internal/fatigue"
	"github.com/alexiusacademia/goshaft/internal/shaft"
	"github.com/xuri/excelize/v2"
)

func sampleCases() []shaft.Case {
	big := shaft.Defaults()
	big.Da, big.Db, big.R = 320, 300, 6
	big.UTS, big.Sy = 500, 300

	torque := shaft.Defaults()
	torque.Moment = shaft.MomentCantilever
	torque.MeanTorque = 150000

	return []shaft.Case{
		{Name: "default", Inputs: shaft.Defaults()},
		{Inputs: big},
		{Name: "torque", Inputs: torque},
	}
}

func TestRun(t *testing.T) {
	rows := Run(sampleCases(), nil)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[1].Name != "case-2" {
		t.Fatalf("expected generated name, got %q", rows[1].Name)
	}
	if rows[0].Result != fatigue.Compute(shaft.Defaults()) {
		t.Fatalf("expected row result to match Compute")
	}
	if len(rows[1].Issues) == 0 {
		t.Fatalf("expected issues for the out-of-range case")
	}
}

func TestRunWithCache(t *testing.T) {
	cache := fatigue.NewCache(4)
	cases := append(sampleCases(), shaft.Case{Name: "again", Inputs: shaft.Defaults()})
	Run(cases, cache)
	if hits, _ := cache.Stats(); hits != 1 {
		t.Fatalf("expected one cache hit, got %d", hits)
	}
}

func TestHeaderHasUniqueColumns(t *testing.T) {
	seen := map[string]bool{}
	for _, h := range Header() {
		if seen[h] {
			t.Fatalf("duplicate column %q", h)
		}
		seen[h] = true
	}
	rows := Run(sampleCases(), nil)
	if got, want := len(rows[0].Record()), len(Header()); got != want {
		t.Fatalf("record has %d fields, header %d", got, want)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, Run(sampleCases(), nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	recs, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d", len(recs))
	}

	col := map[string]int{}
	for i, h := range recs[0] {
		col[h] = i
	}
	if recs[1][col["status"]] != "safe" {
		t.Fatalf("expected default case to be safe, got %q", recs[1][col["status"]])
	}
	if recs[2][col["kb"]] != "" || recs[2][col["se"]] != "" {
		t.Fatalf("expected empty cells for undefined values, got %q %q", recs[2][col["kb"]], recs[2][col["se"]])
	}
	if recs[2][col["n_yield"]] == "" {
		t.Fatalf("expected yield factor for the out-of-range case")
	}
	if recs[3][col["moment"]] != "cantilever" {
		t.Fatalf("expected moment model column, got %q", recs[3][col["moment"]])
	}
}

func TestXLSXRoundTrip(t *testing.T) {
	rows := Run(sampleCases(), nil)

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, rows); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases, err := ReadXLSX(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cases) != len(rows) {
		t.Fatalf("expected %d cases, got %d", len(rows), len(cases))
	}
	for i, c := range cases {
		if c.Name != rows[i].Name {
			t.Fatalf("case %d name = %q, want %q", i, c.Name, rows[i].Name)
		}
		if c.Inputs != rows[i].Inputs {
			t.Fatalf("case %d inputs differ:\n got %+v\nwant %+v", i, c.Inputs, rows[i].Inputs)
		}
	}
}

func TestReadXLSXInvalid(t *testing.T) {
	_, err := ReadXLSX(strings.NewReader("not a workbook"))
	if !shaft.IsKind(err, shaft.KindInvalidFormat) {
		t.Fatalf("expected invalid_format, got %v", err)
	}

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = ReadXLSX(bytes.NewReader(buf.Bytes()))
	if !shaft.IsKind(err, shaft.KindInvalidInput) {
		t.Fatalf("expected invalid_input for a sheet without rows, got %v", err)
	}
}

func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	rows := Run(sampleCases(), nil)

	for _, name := range []string{"out.csv", "out.xlsx"} {
		path := filepath.Join(dir, name)
		if err := WriteFile(path, rows); err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		cases, err := ReadFile(path)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if len(cases) != 3 || cases[2].Inputs != rows[2].Inputs {
			t.Fatalf("%s: inputs did not survive the round trip", name)
		}
	}
}

func TestReadFileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := ReadFile(filepath.Join(dir, "cases.txt")); !shaft.IsKind(err, shaft.KindInvalidFormat) {
		t.Fatalf("expected invalid_format, got %v", err)
	}
	if _, err := ReadFile(filepath.Join(dir, "missing.csv")); !shaft.IsKind(err, shaft.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}

	empty := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(empty, []byte("name,db\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(empty); !shaft.IsKind(err, shaft.KindInvalidInput) {
		t.Fatalf("expected invalid_input, got %v", err)
	}

	bad := filepath.Join(dir, "bad.csv")
	if err := os.WriteFile(bad, []byte("db\nabc\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := ReadFile(bad)
	if err == nil || !strings.Contains(err.Error(), bad) {
		t.Fatalf("expected path in error, got %v", err)
	}

	if err := WriteFile(filepath.Join(dir, "out.pdf"), nil); err == nil {
		t.Fatalf("expected unsupported output extension")
	}
}

func workbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, r := range rows {
		if err := setRow(f, sheet, i+1, r); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestReadXLSXRejectsUnknownColumns(t *testing.T) {
	data := workbook(t, [][]interface{}{
		{"name", "Sut", "yield"},
		{"weak", 400, 250},
	})
	_, err := ReadXLSX(bytes.NewReader(data))
	if !shaft.IsKind(err, shaft.KindInvalidFormat) {
		t.Fatalf("expected invalid_format, got %v", err)
	}
	if !strings.Contains(err.Error(), `"sut"`) {
		t.Fatalf("expected column name in error, got %v", err)
	}

	data = workbook(t, [][]interface{}{
		{"name", "uts", "n_goodman", "status"},
		{"weak", 400, 1.2, "safe"},
	})
	cases, err := ReadXLSX(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("expected result columns to be accepted, got %v", err)
	}
	if len(cases) != 1 || cases[0].Inputs.UTS != 400 {
		t.Fatalf("unexpected cases: %+v", cases)
	}
}

func TestReadCSVColumns(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("name,Sut\nweak,400\n")); !shaft.IsKind(err, shaft.KindInvalidFormat) {
		t.Fatalf("expected invalid_format, got %v", err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, Run(sampleCases(), nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cases, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("expected results CSV to read back, got %v", err)
	}
	if len(cases) != 3 {
		t.Fatalf("expected 3 cases, got %d", len(cases))
	}
}
