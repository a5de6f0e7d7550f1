package server_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scopezero/scopezero/internal/engine"
	"github.com/scopezero/scopezero/internal/greenops"
	"github.com/scopezero/scopezero/internal/ingest"
	"github.com/scopezero/scopezero/internal/server"
	"github.com/scopezero/scopezero/internal/store"
)

//nolint:gochecknoglobals // Fixed test clock.
var testNow = time.Date(2024, 6, 2, 4, 30, 0, 0, time.UTC)

type fixture struct {
	handler http.Handler
	store   *store.Store
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	clock := func() time.Time { return testNow }
	factors := greenops.DefaultTable()
	pipeline, err := ingest.NewPipeline(ingest.DefaultResolver(), ingest.NewNormalizer(factors), 50)
	require.NoError(t, err)

	st := store.New(store.WithClock(clock))
	metrics := server.NewMetrics()
	ing := ingest.NewIngestor(pipeline, st, ingest.WithClock(clock), ingest.WithObserver(metrics))

	svc := server.New(st, ing, factors, metrics, zerolog.Nop(), server.Options{
		CORSOrigins: []string{"http://localhost:3000"},
		MaxUploadMB: 1,
	})
	return fixture{handler: svc.Handler(), store: st}
}

func (f fixture) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func uploadRequest(t *testing.T, filename, content, query string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload"+query, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(server.HeaderTraceID))
}

func TestTraceIDEchoed(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(server.HeaderTraceID, "trace-123")

	rec := f.do(t, req)
	assert.Equal(t, "trace-123", rec.Header().Get(server.HeaderTraceID))
}

func TestDashboard_DefaultData(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	snap := decode[engine.Snapshot](t, rec)
	assert.True(t, snap.IsFresh)
	assert.InDelta(t, 10700, snap.TotalEmissions, 1e-9)
	assert.Nil(t, snap.Records)
	assert.NotContains(t, rec.Body.String(), `"records"`)
}

func TestUpload_CommitsAndUpdatesDashboard(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, uploadRequest(t, "shipments.csv", ingest.SampleCSV(), ""))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decode[server.CommitResponse](t, rec)
	assert.Equal(t, "Ingested 4 rows, 4 suppliers, 3 materials detected", resp.Message)
	assert.Equal(t, 4, resp.Result.Accepted)
	assert.InDelta(t, 242670, resp.Dashboard.TotalEmissions, 1e-9)
	assert.False(t, resp.Dashboard.IsFresh)

	assert.Len(t, f.store.Snapshot().Records, 4)
}

func TestUpload_Preview(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, uploadRequest(t, "shipments.csv", ingest.SampleCSV(), "?preview=true"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var b struct {
		ID      string                  `json:"id"`
		Mapping map[string]*string      `json:"mapping"`
		Records []engine.ActivityRecord `json:"records"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	assert.NotEmpty(t, b.ID)
	assert.Len(t, b.Records, 4)
	require.NotNil(t, b.Mapping["supplier"])
	assert.Equal(t, "Supplier", *b.Mapping["supplier"])

	assert.True(t, f.store.Snapshot().IsFresh, "preview must not commit")
}

func TestUpload_Errors(t *testing.T) {
	tests := []struct {
		name     string
		req      func(t *testing.T) *http.Request
		wantCode int
	}{
		{
			name: "no usable records",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "empty.csv", "Supplier,Material,Weight,Distance\nAcme,Steel,0,0\n", "")
			},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "unsupported extension",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "shipments.pdf", "whatever", "")
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "missing file field",
			req: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader(""))
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			rec := f.do(t, tt.req(t))

			assert.Equal(t, tt.wantCode, rec.Code)
			body := decode[server.ErrorResponse](t, rec)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotEmpty(t, body.Message)
			assert.True(t, f.store.Snapshot().IsFresh)
		})
	}
}

func TestAddRecord(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{
			name:     "valid entry",
			body:     `{"date":"2024-05-01","supplier":"Acme","material":"Steel","weight":100,"distance":10}`,
			wantCode: http.StatusCreated,
		},
		{
			name:     "zero weight",
			body:     `{"date":"2024-05-01","supplier":"Acme","material":"Steel","weight":0}`,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:     "bad date",
			body:     `{"date":"May 1","supplier":"Acme","material":"Steel","weight":5}`,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:     "malformed json",
			body:     `{"date":`,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := httptest.NewRequest(http.MethodPost, "/api/records", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			rec := f.do(t, req)
			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
		})
	}
}

func TestAddRecord_AppliesDefaults(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodPost, "/api/records",
		strings.NewReader(`{"date":"2024-05-01","supplier":"Acme","material":"Steel","weight":100}`))
	req.Header.Set("Content-Type", "application/json")
	require.Equal(t, http.StatusCreated, f.do(t, req).Code)

	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/api/records", nil))
	page := decode[server.RecordsResponse](t, rec)
	require.Len(t, page.Records, 1)
	assert.Equal(t, engine.DefaultTransportMode, page.Records[0].TransportMode)
	assert.Equal(t, engine.DefaultRegion, page.Records[0].Region)
	assert.InDelta(t, 185, page.Records[0].Emissions, 1e-9)
}

func TestRecords_Limit(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusCreated, f.do(t, uploadRequest(t, "s.csv", ingest.SampleCSV(), "")).Code)

	tests := []struct {
		query    string
		wantCode int
		wantLen  int
	}{
		{"", http.StatusOK, 4},
		{"?limit=2", http.StatusOK, 2},
		{"?limit=0", http.StatusOK, 0},
		{"?limit=-1", http.StatusBadRequest, 0},
		{"?limit=abc", http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := f.do(t, httptest.NewRequest(http.MethodGet, "/api/records"+tt.query, nil))
			require.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode != http.StatusOK {
				return
			}
			page := decode[server.RecordsResponse](t, rec)
			assert.Equal(t, 4, page.Total)
			assert.Len(t, page.Records, tt.wantLen)
		})
	}

	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/api/records?limit=1", nil))
	page := decode[server.RecordsResponse](t, rec)
	assert.Equal(t, "Ameco Logistics", page.Records[0].Supplier, "limit keeps the newest records")
}

func TestPartnerSync(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, httptest.NewRequest(http.MethodPost, "/api/partners/maersk/sync", nil))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decode[server.CommitResponse](t, rec)
	assert.Equal(t, 2, resp.Result.Accepted)
	assert.InDelta(t, 108120, resp.Dashboard.TotalEmissions, 1e-9)

	rec = f.do(t, httptest.NewRequest(http.MethodPost, "/api/partners/Maersk/sync", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decode[server.CommitResponse](t, rec)
	assert.Equal(t, []string{"Maersk"}, resp.Result.Skipped)
	assert.Equal(t, "No new records", resp.Message)

	rec = f.do(t, httptest.NewRequest(http.MethodGet, "/api/partners", nil))
	statuses := decode[[]ingest.PartnerStatus](t, rec)
	assert.Equal(t, []ingest.PartnerStatus{
		{Name: "DHL", State: ingest.PartnerConnected, Connected: true},
		{Name: "Maersk", State: ingest.PartnerConnected, Connected: true},
		{Name: "FedEx", State: ingest.PartnerDisconnected, Connected: false},
	}, statuses)
}

func TestPartnerSync_Unknown(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, httptest.NewRequest(http.MethodPost, "/api/partners/UPS/sync", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decode[server.ErrorResponse](t, rec).Message, "unknown partner")
}

func TestReset(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusCreated, f.do(t, uploadRequest(t, "s.csv", ingest.SampleCSV(), "")).Code)
	require.False(t, f.store.Snapshot().IsFresh)

	rec := f.do(t, httptest.NewRequest(http.MethodPost, "/api/reset", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	snap := decode[engine.Snapshot](t, rec)
	assert.True(t, snap.IsFresh)
	assert.InDelta(t, 10700, snap.TotalEmissions, 1e-9)
	assert.True(t, f.store.Snapshot().IsFresh)
}

func TestRecommendations(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusCreated, f.do(t, uploadRequest(t, "s.csv", ingest.SampleCSV(), "")).Code)

	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/api/recommendations", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Recommendations    []engine.Recommendation `json:"recommendations"`
		PotentialReduction float64                 `json:"potentialReduction"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Recommendations, 1)
	assert.Equal(t, "recycle", body.Recommendations[0].Image)
	assert.InDelta(t, 43080, body.PotentialReduction, 1e-9)
}

func TestEmissionFactors(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/api/emission-factors", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[server.FactorsResponse](t, rec)
	assert.Len(t, resp.Factors, 16)
	assert.Contains(t, resp.Fallbacks, "material")
	assert.Contains(t, resp.Fallbacks, "transport")
}

func TestAudit(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusCreated, f.do(t, uploadRequest(t, "s.csv", ingest.SampleCSV(), "")).Code)

	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/api/audit", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	report := decode[engine.AuditReport](t, rec)
	assert.Equal(t, 4, report.TotalRecords)
	assert.Equal(t, 1, report.Commits)
	assert.InDelta(t, 100, report.CompletenessScore, 1e-9)
	assert.InDelta(t, 100, report.FactorCoverage, 1e-9)
}

func TestTemplate(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/api/template", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ingest.SampleCSV(), rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "scope3_template.csv")
}

func TestMetrics(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusCreated, f.do(t, uploadRequest(t, "s.csv", ingest.SampleCSV(), "")).Code)

	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `scopezero_commits_total{origin="upload"} 1`)
	assert.Contains(t, body, `scopezero_records_accepted_total{origin="upload"} 4`)
	assert.Contains(t, body, `scopezero_total_emissions_kg 242670`)
}

func TestUnknownRoute(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, decode[server.ErrorResponse](t, rec).Code)
}

func TestCORS(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set("Origin", "http://localhost:3000")

	rec := f.do(t, req)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
