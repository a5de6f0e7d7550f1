package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scopezero/scopezero/internal/config"
	"github.com/scopezero/scopezero/internal/engine"
	"github.com/scopezero/scopezero/internal/ingest"
)

//nolint:gochecknoglobals // Fixed test clock.
var testNow = time.Date(2024, 6, 2, 4, 30, 0, 0, time.UTC)

// runCLI executes the root command with isolated config and returns stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvProjectDir, filepath.Join(home, "project"))
	for _, key := range []string{
		config.EnvLogLevel, config.EnvLogFormat, config.EnvAddr, config.EnvFactorsFile, config.EnvChunkSize,
	} {
		t.Setenv(key, "")
	}

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd("test", func() time.Time { return testNow })
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRoot_Help(t *testing.T) {
	out, _, err := runCLI(t, "--help")
	require.NoError(t, err)

	for _, sub := range []string{"ingest", "records", "add", "sync", "factors", "columns", "audit", "template", "serve", "dashboard"} {
		assert.Contains(t, out, sub)
	}
}

func TestRoot_Version(t *testing.T) {
	out, _, err := runCLI(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "test")
}

func TestIngest_Table(t *testing.T) {
	path := writeFile(t, "shipments.csv", ingest.SampleCSV())

	out, errOut, err := runCLI(t, "ingest", path)
	require.NoError(t, err)

	assert.Contains(t, errOut, "Ingested 4 rows, 4 suppliers, 3 materials detected")
	assert.Contains(t, out, "242,670 kg")
	assert.Contains(t, out, "(live)")
	assert.Contains(t, out, "Green Steel Circularity")
}

func TestIngest_JSON(t *testing.T) {
	path := writeFile(t, "shipments.csv", ingest.SampleCSV())

	out, _, err := runCLI(t, "ingest", path, "--output", "json")
	require.NoError(t, err)

	var doc engine.SnapshotJSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 4, doc.Metadata.RecordCount)
	assert.InDelta(t, 242670, doc.TotalEmissions, 1e-9)
	assert.Equal(t, 1, doc.Commits)
}

func TestIngest_NDJSON(t *testing.T) {
	path := writeFile(t, "shipments.csv", ingest.SampleCSV())

	out, _, err := runCLI(t, "ingest", path, "-o", "ndjson")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 4)
}

func TestIngest_Preview(t *testing.T) {
	path := writeFile(t, "vendors.csv", "Vendor,Item,Mass,Km\nAcme,Steel,100,0\n")

	out, errOut, err := runCLI(t, "ingest", path, "--preview")
	require.NoError(t, err)

	assert.Contains(t, errOut, "1 record(s), 0 rejected")
	assert.Contains(t, errOut, "supplier=Vendor material=Item weight=Mass distance=Km")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "185.0")
}

func TestIngest_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    func(t *testing.T) []string
		wantErr string
	}{
		{
			name:    "no args",
			args:    func(*testing.T) []string { return []string{"ingest"} },
			wantErr: "requires at least 1 arg",
		},
		{
			name: "no usable records",
			args: func(t *testing.T) []string {
				return []string{"ingest", writeFile(t, "bad.csv", "Supplier,Weight,Distance\nAcme,0,0\n")}
			},
			wantErr: ingest.ErrNoUsableRecords.Error(),
		},
		{
			name: "unsupported format",
			args: func(t *testing.T) []string {
				return []string{"ingest", writeFile(t, "data.json", "{}")}
			},
			wantErr: "unsupported file format",
		},
		{
			name:    "missing file",
			args:    func(t *testing.T) []string { return []string{"ingest", filepath.Join(t.TempDir(), "nope.csv")} },
			wantErr: "opening",
		},
		{
			name: "bad output format",
			args: func(t *testing.T) []string {
				return []string{"ingest", writeFile(t, "s.csv", ingest.SampleCSV()), "-o", "xml"}
			},
			wantErr: "unknown output format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args(t)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRecords_SortAndPage(t *testing.T) {
	path := writeFile(t, "shipments.csv", ingest.SampleCSV())

	out, _, err := runCLI(t, "records", path, "--sort", "emissions:desc", "--limit", "2", "-o", "json")
	require.NoError(t, err)

	var page recordsPage
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	require.Len(t, page.Records, 2)
	assert.Equal(t, "Ameco Logistics", page.Records[0].Supplier)
	assert.Equal(t, "Vulcan Steel", page.Records[1].Supplier)
	assert.Equal(t, 4, page.Pagination.TotalItems)
	assert.Equal(t, 2, page.Pagination.TotalPages)
}

func TestRecords_InvalidPagination(t *testing.T) {
	path := writeFile(t, "shipments.csv", ingest.SampleCSV())

	_, _, err := runCLI(t, "records", path, "--page-size", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--page-size requires --page")
}

func TestAdd(t *testing.T) {
	out, errOut, err := runCLI(t, "add", "--supplier", "Acme", "--material", "Steel", "--weight", "100", "-o", "ndjson")
	require.NoError(t, err)

	assert.Contains(t, errOut, "Ingested 1 rows, 1 suppliers, 1 materials detected")
	var rec engine.ActivityRecord
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &rec))
	assert.Equal(t, "2024-06-02", rec.Date)
	assert.Equal(t, engine.DefaultTransportMode, rec.TransportMode)
	assert.InDelta(t, 185, rec.Emissions, 1e-9)
}

func TestAdd_Invalid(t *testing.T) {
	_, _, err := runCLI(t, "add", "--supplier", "Acme", "--material", "Steel")
	require.ErrorIs(t, err, ingest.ErrInvalidEntry)
}

func TestSync(t *testing.T) {
	out, errOut, err := runCLI(t, "sync", "Maersk", "DHL", "-o", "json")
	require.NoError(t, err)

	assert.Contains(t, errOut, "Ingested 2 rows")
	assert.Contains(t, errOut, "already connected: [DHL]")

	var doc engine.SnapshotJSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.InDelta(t, 108120, doc.TotalEmissions, 1e-9)
}

func TestSync_List(t *testing.T) {
	out, _, err := runCLI(t, "sync", "--list")
	require.NoError(t, err)

	assert.Contains(t, out, "PARTNER")
	assert.Regexp(t, `DHL\s+connected`, out)
	assert.Regexp(t, `FedEx\s+disconnected`, out)
}

func TestSync_Unknown(t *testing.T) {
	_, _, err := runCLI(t, "sync", "UPS")
	require.ErrorIs(t, err, ingest.ErrUnknownPartner)
}

func TestFactors(t *testing.T) {
	out, _, err := runCLI(t, "factors")
	require.NoError(t, err)
	assert.Contains(t, out, "Air Cargo")
	assert.Contains(t, out, "(fallback)")

	out, _, err = runCLI(t, "factors", "-o", "json")
	require.NoError(t, err)
	var factors []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &factors))
	assert.Len(t, factors, 16)
}

func TestColumns(t *testing.T) {
	out, _, err := runCLI(t, "columns")
	require.NoError(t, err)
	assert.Contains(t, out, "FIELD")
	assert.Contains(t, out, "weight (kg), kgs, mass")

	cfg := writeFile(t, "config.yaml", "ingest:\n  chunk_size: 50\n  max_upload_mb: 5\n  synonyms:\n    region: [Zone]\n")
	out, _, err = runCLI(t, "--config", cfg, "columns", "-o", "json")
	require.NoError(t, err)

	var cols []columnInfo
	require.NoError(t, json.Unmarshal([]byte(out), &cols))
	require.Len(t, cols, 7)
	assert.Equal(t, columnInfo{Field: "region", Canonical: "Region", Synonyms: []string{"zone"}, Source: "config"}, cols[6])
	assert.Equal(t, "default", cols[0].Source)
	assert.Equal(t, "TransportMode", cols[5].Canonical)
}

func TestAudit(t *testing.T) {
	path := writeFile(t, "shipments.csv", "Supplier,Material,Weight,Distance,TransportMode\n"+
		"Acme,Unobtainium,100,10,Heavy Duty Truck\n"+
		"Acme,Steel,100,10,Heavy Duty Truck\n")

	out, _, err := runCLI(t, "audit", path, "-o", "json")
	require.NoError(t, err)

	var report engine.AuditReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 2, report.TotalRecords)
	assert.InDelta(t, 100, report.CompletenessScore, 1e-9)
	assert.InDelta(t, 66.7, report.FactorCoverage, 1e-9)
}

func TestTemplate(t *testing.T) {
	out, _, err := runCLI(t, "template")
	require.NoError(t, err)
	assert.Equal(t, ingest.SampleCSV(), out)

	dest := filepath.Join(t.TempDir(), "tmpl.csv")
	_, _, err = runCLI(t, "template", "--file", dest)
	require.NoError(t, err)
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, ingest.SampleCSV(), string(data))
}

func TestDashboard_NonTerminal(t *testing.T) {
	out, _, err := runCLI(t, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "(demo data)")
}

func TestConfigFileApplied(t *testing.T) {
	cfgPath := writeFile(t, "config.yaml", "output:\n  default_format: ndjson\n")
	path := writeFile(t, "shipments.csv", ingest.SampleCSV())

	out, _, err := runCLI(t, "--config", cfgPath, "ingest", path)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 4)
}

func TestInvalidFactorFileFailsStartup(t *testing.T) {
	factors := writeFile(t, "factors.yaml", "version: 2.0.0\n")
	cfgPath := writeFile(t, "config.yaml", "factors:\n  file: "+factors+"\n")

	_, _, err := runCLI(t, "--config", cfgPath, "factors")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "initializing")
}
