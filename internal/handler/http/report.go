package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paycore/payroll-engine-go/internal/domain/report"
	"github.com/paycore/payroll-engine-go/internal/handler/http/response"
	reportsvc "github.com/paycore/payroll-engine-go/internal/service/report"
)

type ReportGenerator interface {
	Generate(ctx context.Context, periodID string, reportType report.ReportType) (reportsvc.GeneratedReport, error)
}

type ReportHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService ReportGenerator
}

func NewReportHandler(reportService ReportGenerator) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

func (h *reportHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	periodID := chi.URLParam(r, "id")
	if periodID == "" {
		response.BadRequest(w, "Period ID is required", nil)
		return
	}

	reportType := report.ReportType(r.URL.Query().Get("type"))
	if reportType == "" {
		reportType = report.ReportTypeSummary
	}

	result, err := h.reportService.Generate(r.Context(), periodID, reportType)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
