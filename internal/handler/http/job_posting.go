package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/workhive-hq/workhive-backend-go/internal/domain/jobposting"
	"github.com/workhive-hq/workhive-backend-go/internal/handler/http/response"
)

type JobPostingHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListPublished(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Close(w http.ResponseWriter, r *http.Request)
}

type jobPostingHandlerImpl struct {
	jobPostingService jobposting.JobPostingService
}

func NewJobPostingHandler(jobPostingService jobposting.JobPostingService) JobPostingHandler {
	return &jobPostingHandlerImpl{jobPostingService: jobPostingService}
}

func (h *jobPostingHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req jobposting.CreateJobPostingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.jobPostingService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Job posting created", result)
}

func (h *jobPostingHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.jobPostingService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListPublished is unauthenticated: the public job board for one company.
func (h *jobPostingHandlerImpl) ListPublished(w http.ResponseWriter, r *http.Request) {
	result, err := h.jobPostingService.ListPublished(r.Context(), chi.URLParam(r, "companyID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *jobPostingHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.jobPostingService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *jobPostingHandlerImpl) Close(w http.ResponseWriter, r *http.Request) {
	result, err := h.jobPostingService.Close(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Job posting closed", result)
}
