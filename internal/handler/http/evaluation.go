package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/simagang/presensi-backend-go/internal/domain/evaluation"
	"github.com/simagang/presensi-backend-go/internal/handler/http/response"
)

type EvaluationHandler interface {
	UpsertMine(w http.ResponseWriter, r *http.Request)
	GetMine(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Grade(w http.ResponseWriter, r *http.Request)
}

type evaluationHandlerImpl struct {
	evaluationService evaluation.EvaluationService
}

func NewEvaluationHandler(evaluationService evaluation.EvaluationService) EvaluationHandler {
	return &evaluationHandlerImpl{
		evaluationService: evaluationService,
	}
}

// UpsertMine implements EvaluationHandler.
func (h *evaluationHandlerImpl) UpsertMine(w http.ResponseWriter, r *http.Request) {
	var req evaluation.UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.evaluationService.UpsertMine(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Evaluation saved", result)
}

// GetMine implements EvaluationHandler.
func (h *evaluationHandlerImpl) GetMine(w http.ResponseWriter, r *http.Request) {
	result, err := h.evaluationService.GetMine(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements EvaluationHandler.
func (h *evaluationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}
	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			limit = limitNum
		}
	}

	results, err := h.evaluationService.List(r.Context(), status, page, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Grade implements EvaluationHandler.
func (h *evaluationHandlerImpl) Grade(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req evaluation.GradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.evaluationService.Grade(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Evaluation graded", result)
}
