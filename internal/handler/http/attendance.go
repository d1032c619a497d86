package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/paycore/payroll-engine-go/internal/domain/attendance"
	"github.com/paycore/payroll-engine-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Recompute(w http.ResponseWriter, r *http.Request)
	UpsertFinal(w http.ResponseWriter, r *http.Request)
	ListSummaries(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

func (h *attendanceHandlerImpl) Recompute(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecomputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.attendanceService.Recompute(r.Context(), req.Month, req.Year); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance summaries recomputed", nil)
}

func (h *attendanceHandlerImpl) UpsertFinal(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpsertFinalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.attendanceService.UpsertFinal(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance summary updated", nil)
}

func (h *attendanceHandlerImpl) ListSummaries(w http.ResponseWriter, r *http.Request) {
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		response.BadRequest(w, "Invalid or missing month", nil)
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 2000 {
		response.BadRequest(w, "Invalid or missing year", nil)
		return
	}

	result, err := h.attendanceService.ListSummaries(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
