package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/scopezero/scopezero/internal/engine"
	"github.com/scopezero/scopezero/internal/greenops"
	"github.com/scopezero/scopezero/internal/ingest"
	"github.com/scopezero/scopezero/internal/logging"
	"github.com/scopezero/scopezero/internal/tabular"
)

// CommitResponse is returned by every mutating endpoint.
type CommitResponse struct {
	Message string               `json:"message"`
	Result  *ingest.CommitResult `json:"result"`
	// Dashboard is the snapshot after the commit, without records.
	Dashboard engine.Snapshot `json:"dashboard"`
}

func newCommitResponse(r *ingest.CommitResult) CommitResponse {
	return CommitResponse{Message: r.Message(), Result: r, Dashboard: r.Snapshot.Summary()}
}

// FactorsResponse lists the factor table.
type FactorsResponse struct {
	Source    string             `json:"source"`
	Year      int                `json:"year"`
	Version   string             `json:"version"`
	Factors   []greenops.Factor  `json:"factors"`
	Fallbacks map[string]float64 `json:"fallbacks"`
}

// RecordsResponse is one page of records, newest last.
type RecordsResponse struct {
	Total   int                     `json:"total"`
	Records []engine.ActivityRecord `json:"records"`
}

func (svc *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (svc *Server) dashboard(c echo.Context) error {
	return c.JSON(http.StatusOK, svc.store.Snapshot().Summary())
}

func (svc *Server) recommendations(c echo.Context) error {
	s := svc.store.Snapshot()
	return c.JSON(http.StatusOK, map[string]any{
		"recommendations":    s.Recommendations,
		"potentialReduction": s.PotentialReduction,
	})
}

func (svc *Server) records(c echo.Context) error {
	limit := DefaultRecordLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid limit %q", raw))
		}
		limit = n
	}

	all := svc.store.Snapshot().Records
	start := max(len(all)-limit, 0)
	page := make([]engine.ActivityRecord, len(all)-start)
	copy(page, all[start:])
	return c.JSON(http.StatusOK, RecordsResponse{Total: len(all), Records: page})
}

func (svc *Server) emissionFactors(c echo.Context) error {
	material, transport := svc.factors.Fallbacks()
	return c.JSON(http.StatusOK, FactorsResponse{
		Source:  svc.factors.Source,
		Year:    svc.factors.Year,
		Version: svc.factors.Version,
		Factors: svc.factors.Factors(),
		Fallbacks: map[string]float64{
			string(greenops.KindMaterial):  material,
			string(greenops.KindTransport): transport,
		},
	})
}

func (svc *Server) audit(c echo.Context) error {
	return c.JSON(http.StatusOK, engine.Audit(svc.store.Snapshot(), svc.factors))
}

func (svc *Server) template(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="scope3_template.csv"`)
	return c.Blob(http.StatusOK, "text/csv", []byte(ingest.SampleCSV()))
}

func (svc *Server) upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fmt.Errorf("%w: missing form file %q: %w", ErrBadUpload, "file", err)
	}
	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadUpload, err)
	}
	defer f.Close()

	table, err := tabular.Parse(fh.Filename, f)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrBadUpload, fh.Filename, err)
	}

	ctx := c.Request().Context()
	if preview, _ := strconv.ParseBool(c.QueryParam("preview")); preview {
		b, previewErr := svc.ingestor.Preview(ctx, table)
		if previewErr != nil {
			return previewErr
		}
		return c.JSON(http.StatusOK, b)
	}

	result, err := svc.ingestor.IngestTable(ctx, table, ingest.OriginUpload)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newCommitResponse(result))
}

func (svc *Server) addRecord(c echo.Context) error {
	var entry ingest.ManualEntry
	if err := c.Bind(&entry); err != nil {
		return err
	}
	result, err := svc.ingestor.AddManual(c.Request().Context(), entry)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newCommitResponse(result))
}

func (svc *Server) partners(c echo.Context) error {
	return c.JSON(http.StatusOK, svc.ingestor.Partners().Status())
}

func (svc *Server) syncPartner(c echo.Context) error {
	result, err := svc.ingestor.SyncPartners(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}
	if result.Accepted == 0 {
		return c.JSON(http.StatusOK, newCommitResponse(result))
	}
	return c.JSON(http.StatusCreated, newCommitResponse(result))
}

func (svc *Server) reset(c echo.Context) error {
	s := svc.store.Reset()
	svc.metrics.SetTotal(s.TotalEmissions)

	ctx := c.Request().Context()
	log := logging.FromContext(ctx)
	log.Info().Ctx(ctx).
		Str("component", "server").
		Str("operation", "reset").
		Int64("version", s.Version).
		Msg("store reset to demo data")
	return c.JSON(http.StatusOK, s.Summary())
}
