package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Starkspan/Final5/internal/analyzer"
	"github.com/Starkspan/Final5/internal/estimate"
	"github.com/Starkspan/Final5/internal/metrics"
)

type stubExtractor struct {
	text string
	err  error
}

func (s stubExtractor) Extract(context.Context, []byte) (string, error) {
	return s.text, s.err
}

func newTestServer(ex analyzer.TextExtractor) *server {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	rec := metrics.NewRecorder()
	return &server{
		analyzer:       analyzer.NewService(ex, estimate.DefaultCatalog(), log, rec, time.Second),
		metrics:        rec,
		logger:         log,
		maxUploadBytes: 1 << 20,
		corsOrigin:     "*",
	}
}

func newUploadRequest(t *testing.T, withFile bool, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if withFile {
		fw, err := mw.CreateFormFile(uploadField, "drawing.pdf")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write([]byte("%PDF-1.4 stub")); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/pdf/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return out
}

func TestPDFAnalyzeFullEstimate(t *testing.T) {
	srv := newTestServer(stubExtractor{text: "Platte 40mm 40mm 40mm Alu 2.5 kg"})
	req := newUploadRequest(t, true, map[string]string{"stueckzahl": "1", "zielpreis": "150"})
	rr := httptest.NewRecorder()

	srv.routes().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	if body["unitPriceFinal"] != "126.98" {
		t.Fatalf("expected unitPriceFinal 126.98, got %v", body["unitPriceFinal"])
	}
	if body["targetPrice"] != "150" {
		t.Fatalf("expected targetPrice to pass through, got %v", body["targetPrice"])
	}
	if body["quantity"] != float64(1) {
		t.Fatalf("expected quantity 1, got %v", body["quantity"])
	}
	if rr.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected generated request id header")
	}
}

func TestPDFAnalyzeQuantityFieldWins(t *testing.T) {
	srv := newTestServer(stubExtractor{text: "Bolzen 30mm 20mm"})
	req := newUploadRequest(t, true, map[string]string{"quantity": "10", "stueckzahl": "3"})
	rr := httptest.NewRecorder()

	srv.routes().ServeHTTP(rr, req)

	body := decodeBody(t, rr)
	if body["quantity"] != float64(10) {
		t.Fatalf("expected quantity 10, got %v", body["quantity"])
	}
	if _, ok := body["targetPrice"]; !ok || body["targetPrice"] != nil {
		t.Fatalf("expected null targetPrice, got %v", body["targetPrice"])
	}
}

func TestPDFAnalyzeMissingFile(t *testing.T) {
	srv := newTestServer(stubExtractor{text: "unused"})
	req := newUploadRequest(t, false, map[string]string{"quantity": "2"})
	rr := httptest.NewRecorder()

	srv.routes().ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if _, ok := decodeBody(t, rr)["error"]; !ok {
		t.Fatalf("expected error field in %s", rr.Body.String())
	}
}

func TestPDFAnalyzeExtractionFailure(t *testing.T) {
	srv := newTestServer(stubExtractor{err: errors.New("pdftotext exited with status 1")})
	req := newUploadRequest(t, true, nil)
	rr := httptest.NewRecorder()

	srv.routes().ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["error"] != analysisFailedMsg {
		t.Fatalf("expected generic error message, got %v", body["error"])
	}
	if _, ok := body["detail"]; ok {
		t.Fatalf("error detail must not leak outside dev: %v", body)
	}
}

func TestPDFAnalyzeInsufficientIsOK(t *testing.T) {
	srv := newTestServer(stubExtractor{text: "Zeichnung Nr. 7"})
	rr := httptest.NewRecorder()

	srv.routes().ServeHTTP(rr, newUploadRequest(t, true, nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != `{"advisory":"not enough valid measurements recognized"}` {
		t.Fatalf("unexpected body %s", got)
	}
}

func TestTextAnalyze(t *testing.T) {
	srv := newTestServer(stubExtractor{})
	payload := `{"text":"Welle 300mm 200mm 150mm","quantity":"4 Stk","targetPrice":99.5}`
	req := httptest.NewRequest(http.MethodPost, "/text/analyze", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	srv.routes().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	if body["advisory"] != estimate.AdvisoryOversize {
		t.Fatalf("expected oversize advisory, got %v", body)
	}
	if body["shape"] != string(estimate.ShapeStandard) {
		t.Fatalf("expected standard shape, got %v", body["shape"])
	}
}

func TestTextAnalyzeBlankTextIsInsufficient(t *testing.T) {
	for _, payload := range []string{`{"text":"  "}`, `{}`} {
		srv := newTestServer(stubExtractor{})
		req := httptest.NewRequest(http.MethodPost, "/text/analyze", strings.NewReader(payload))
		rr := httptest.NewRecorder()

		srv.routes().ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("payload %s: expected 200, got %d", payload, rr.Code)
		}
		if got := decodeBody(t, rr)["advisory"]; got != estimate.AdvisoryInsufficient {
			t.Fatalf("payload %s: expected insufficient advisory, got %v", payload, got)
		}
	}
}

func TestTextAnalyzeRejectsInvalidJSON(t *testing.T) {
	srv := newTestServer(stubExtractor{})
	req := httptest.NewRequest(http.MethodPost, "/text/analyze", strings.NewReader(`{"text":`))
	rr := httptest.NewRecorder()

	srv.routes().ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestParseJSONQuantity(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{raw: ``, want: 1},
		{raw: `5`, want: 5},
		{raw: `"12 Stk"`, want: 12},
		{raw: `0`, want: 1},
		{raw: `-3`, want: 1},
		{raw: `"abc"`, want: 1},
		{raw: `null`, want: 1},
	}
	for _, tc := range cases {
		if got := parseJSONQuantity(json.RawMessage(tc.raw)); got != tc.want {
			t.Fatalf("parseJSONQuantity(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(stubExtractor{})
	req := httptest.NewRequest(http.MethodOptions, "/pdf/analyze", nil)
	rr := httptest.NewRecorder()

	srv.routes().ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard origin, got %q", got)
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	srv := newTestServer(stubExtractor{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rr := httptest.NewRecorder()

	srv.routes().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got := rr.Header().Get(requestIDHeader); got != "abc-123" {
		t.Fatalf("expected echoed request id, got %q", got)
	}
	if decodeBody(t, rr)["status"] != "ok" {
		t.Fatalf("unexpected health body %s", rr.Body.String())
	}
}

func TestCatalogEndpoint(t *testing.T) {
	srv := newTestServer(stubExtractor{})
	rr := httptest.NewRecorder()

	srv.routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/catalog", nil))

	var got estimate.Catalog
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode catalog: %v", err)
	}
	if got.Materials[estimate.Brass].PricePerKg != 8 {
		t.Fatalf("unexpected brass price %+v", got.Materials[estimate.Brass])
	}
	if got.Rates.MachineHourlyRate != 35 {
		t.Fatalf("unexpected rates %+v", got.Rates)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(stubExtractor{text: "Bolzen 30mm 20mm"})
	router := srv.routes()
	router.ServeHTTP(httptest.NewRecorder(), newUploadRequest(t, true, nil))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if !strings.Contains(rr.Body.String(), `estimator_outcomes_total{outcome="estimated"} 1`) {
		t.Fatalf("expected estimated outcome counter in metrics output")
	}
}
