package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexiusacademia/goshaft/internal/batch"
	"github.com/alexiusacademia/goshaft/internal/fatigue"
	"github.com/alexiusacademia/goshaft/internal/shaft"
)

func newTestRouter(d Deps) http.Handler {
	if d.Cache == nil {
		d.Cache = fatigue.NewCache(16)
	}
	return NewRouter(d)
}

func do(t *testing.T, h http.Handler, method, path, contentType string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestComputeDefaults(t *testing.T) {
	h := newTestRouter(Deps{})
	rec := do(t, h, "POST", "/api/fatigue/compute", "application/json", []byte(`{}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var row struct {
		Name   string `json:"name"`
		Result struct {
			Kf       *float64               `json:"kf"`
			NGoodman *float64               `json:"n_goodman"`
			Status   string                 `json:"status"`
			Life     struct{ State string } `json:"life"`
		} `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &row); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if row.Name != "case-1" {
		t.Fatalf("expected generated name, got %q", row.Name)
	}
	if row.Result.Kf == nil || *row.Result.Kf < 1.33 || *row.Result.Kf > 1.34 {
		t.Fatalf("unexpected kf %v", row.Result.Kf)
	}
	if row.Result.NGoodman == nil || *row.Result.NGoodman < 2.26 || *row.Result.NGoodman > 2.27 {
		t.Fatalf("unexpected n_goodman %v", row.Result.NGoodman)
	}
	if row.Result.Status != "safe" {
		t.Fatalf("expected safe, got %q", row.Result.Status)
	}
}

func TestComputeUndefinedIsNull(t *testing.T) {
	h := newTestRouter(Deps{})
	rec := do(t, h, "POST", "/api/fatigue/compute", "application/json", []byte(`{"r": 0}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"kt":null`) {
		t.Fatalf("expected kt null for r=0, got %s", body)
	}
	if !strings.Contains(body, `"issues"`) {
		t.Fatalf("expected issues listed, got %s", body)
	}
}

func TestComputeRejectsBadInput(t *testing.T) {
	h := newTestRouter(Deps{})
	cases := []struct {
		name string
		body string
	}{
		{"malformed", `{"da":`},
		{"wrong type", `{"da":"big"}`},
		{"unknown moment model", `{"moment":"spring"}`},
		{"misspelled field", `{"sut":400,"db":20}`},
		{"wrong case", `{"dB":20}`},
		{"finish with surface factor", `{"finish":"ground","a_surf":4.51}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, "POST", "/api/fatigue/compute", "application/json", []byte(tc.body))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			var e errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil || e.Error == "" {
				t.Fatalf("expected error body, got %s", rec.Body.String())
			}
		})
	}
}

func TestBatch(t *testing.T) {
	h := newTestRouter(Deps{})
	body := `{"cases":[{"name":"a"},{"name":"b","finish":"hot-rolled"},{"db":20}]}`
	rec := do(t, h, "POST", "/api/fatigue/batch", "application/json", []byte(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp BatchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 3 || len(resp.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", resp.Count)
	}
	if resp.Rows[1].Inputs.ASurf != 57.7 {
		t.Fatalf("expected hot-rolled finish, got a=%v", resp.Rows[1].Inputs.ASurf)
	}
	if resp.Rows[2].Name != "case-3" {
		t.Fatalf("expected case-3, got %q", resp.Rows[2].Name)
	}
}

func TestBatchLimits(t *testing.T) {
	h := newTestRouter(Deps{MaxBatch: 2})

	rec := do(t, h, "POST", "/api/fatigue/batch", "application/json", []byte(`{"cases":[{},{},{}]}`))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
	rec = do(t, h, "POST", "/api/fatigue/batch", "application/json", []byte(`{"cases":[]}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty batch, got %d", rec.Code)
	}
	rec = do(t, h, "POST", "/api/fatigue/batch", "application/json", []byte(`{"case":[{}]}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown top-level key, got %d", rec.Code)
	}
	rec = do(t, h, "POST", "/api/fatigue/batch", "application/json", []byte(`{"cases":[{},{"Sut":400}]}`))
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "cases[1]") {
		t.Fatalf("expected indexed 400 for unknown field, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = do(t, h, "POST", "/api/fatigue/batch", "application/json", []byte(`{"cases":[{},{"finish":"polished"}]}`))
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "cases[1]") {
		t.Fatalf("expected indexed 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestExportCSV(t *testing.T) {
	h := newTestRouter(Deps{})
	rec := do(t, h, "POST", "/api/fatigue/export", "application/json", []byte(`{"cases":[{"name":"shaft-1"}]}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("expected text/csv, got %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Fatalf("expected attachment, got %q", cd)
	}
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[1], "shaft-1,") {
		t.Fatalf("unexpected row %q", lines[1])
	}
}

func multipartBody(t *testing.T, filename string, content []byte) ([]byte, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fw.Write(content)
	mw.Close()
	return buf.Bytes(), mw.FormDataContentType()
}

func TestImportCSV(t *testing.T) {
	h := newTestRouter(Deps{})

	var csvBuf bytes.Buffer
	cases := []shaft.Case{{Name: "one", Inputs: shaft.Defaults()}, {Name: "two", Inputs: shaft.Defaults()}}
	if err := shaft.WriteCSV(&csvBuf, cases); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	body, ct := multipartBody(t, "cases.csv", csvBuf.Bytes())
	rec := do(t, h, "POST", "/api/fatigue/import", ct, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp BatchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 2 || resp.Rows[1].Name != "two" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestImportXLSX(t *testing.T) {
	h := newTestRouter(Deps{})

	var xbuf bytes.Buffer
	rows := batch.Run([]shaft.Case{{Name: "sheet-case", Inputs: shaft.Defaults()}}, nil)
	if err := batch.WriteXLSX(&xbuf, rows); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}
	body, ct := multipartBody(t, "cases.xlsx", xbuf.Bytes())
	rec := do(t, h, "POST", "/api/fatigue/import", ct, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "sheet-case") {
		t.Fatalf("expected imported case name, got %s", rec.Body.String())
	}
}

func TestImportErrors(t *testing.T) {
	h := newTestRouter(Deps{})

	body, ct := multipartBody(t, "cases.txt", []byte("x"))
	if rec := do(t, h, "POST", "/api/fatigue/import", ct, body); rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d", rec.Code)
	}

	body, ct = multipartBody(t, "cases.csv", []byte("name,Sut\nweak,400\n"))
	if rec := do(t, h, "POST", "/api/fatigue/import", ct, body); rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "sut") {
		t.Fatalf("expected 400 naming the column, got %d: %s", rec.Code, rec.Body.String())
	}

	body, ct = multipartBody(t, "cases.csv", []byte("name,da\nbad,abc\n"))
	if rec := do(t, h, "POST", "/api/fatigue/import", ct, body); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	if rec := do(t, h, "POST", "/api/fatigue/import", "application/json", []byte(`{}`)); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without file, got %d", rec.Code)
	}
}

func TestFinishesAndHealth(t *testing.T) {
	h := newTestRouter(Deps{})

	rec := do(t, h, "GET", "/api/finishes", "", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "machined") {
		t.Fatalf("unexpected finishes response %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, h, "GET", "/api/health", "", nil)
	var health map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if health["status"] != "ok" {
		t.Fatalf("expected ok, got %v", health["status"])
	}
	if _, ok := health["cache_entries"]; !ok {
		t.Fatalf("expected cache_entries, got %v", health)
	}
}

func TestRoutingErrors(t *testing.T) {
	h := newTestRouter(Deps{})
	if rec := do(t, h, "GET", "/api/fatigue/compute", "", nil); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	if rec := do(t, h, "GET", "/api/nope", "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCORS(t *testing.T) {
	h := newTestRouter(Deps{CORSOrigin: "https://example.org"})
	rec := do(t, h, "OPTIONS", "/api/fatigue/compute", "", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://example.org" {
		t.Fatalf("unexpected origin %q", got)
	}
}

func TestRateLimit(t *testing.T) {
	h := newTestRouter(Deps{Rate: 1, Burst: 2})
	var codes []int
	for i := 0; i < 3; i++ {
		codes = append(codes, do(t, h, "GET", "/api/health", "", nil).Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("expected first two requests allowed, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected 429 on third request, got %v", codes)
	}
}

func TestClientKey(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.7:51234"
	if got := clientKey(req); got != "10.0.0.7" {
		t.Fatalf("expected host only, got %q", got)
	}
	req.RemoteAddr = "unix"
	if got := clientKey(req); got != "unix" {
		t.Fatalf("expected raw address, got %q", got)
	}
}

func TestClientRateLimiterEvictsIdleClients(t *testing.T) {
	l := NewClientRateLimiter(1, 1)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	l.lastSweep = now

	l.limiter("10.0.0.1")
	l.limiter("10.0.0.2")
	if l.Len() != 2 {
		t.Fatalf("expected 2 clients, got %d", l.Len())
	}

	now = now.Add(DefaultClientIdle / 2)
	l.limiter("10.0.0.2")

	now = now.Add(DefaultClientIdle / 2)
	l.limiter("10.0.0.3")
	if l.Len() != 2 {
		t.Fatalf("expected the idle client to be dropped, got %d clients", l.Len())
	}
	if _, ok := l.clients["10.0.0.1"]; ok {
		t.Fatalf("expected 10.0.0.1 to be evicted")
	}
	if _, ok := l.clients["10.0.0.2"]; !ok {
		t.Fatalf("expected recently seen 10.0.0.2 to be kept")
	}
}
