package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/workhive-hq/workhive-backend-go/internal/domain/verification"
	"github.com/workhive-hq/workhive-backend-go/internal/handler/http/response"
)

const maxDocumentSize = 10 << 20 // 10 MiB

type VerificationHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type verificationHandlerImpl struct {
	verificationService verification.VerificationService
}

func NewVerificationHandler(verificationService verification.VerificationService) VerificationHandler {
	return &verificationHandlerImpl{verificationService: verificationService}
}

func (h *verificationHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxDocumentSize); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "file form field is required", nil)
		return
	}
	defer file.Close()

	req := verification.UploadDocumentRequest{
		DocumentType: r.FormValue("document_type"),
		FileName:     header.Filename,
	}

	result, err := h.verificationService.Upload(r.Context(), req, file, header.Header.Get("Content-Type"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Document uploaded", result)
}

func (h *verificationHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	req := verification.ReviewDocumentRequest{DocumentID: chi.URLParam(r, "documentID")}

	result, err := h.verificationService.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Document approved", result)
}

func (h *verificationHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	req := verification.ReviewDocumentRequest{
		DocumentID: chi.URLParam(r, "documentID"),
		Reason:     body.Reason,
	}

	result, err := h.verificationService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Document rejected", result)
}

func (h *verificationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.verificationService.Get(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
