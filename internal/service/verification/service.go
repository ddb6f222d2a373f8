package verification

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"

	"github.com/workhive-hq/workhive-backend-go/internal/domain/notification"
	"github.com/workhive-hq/workhive-backend-go/internal/domain/verification"
	"github.com/workhive-hq/workhive-backend-go/internal/pkg/storage"
	"github.com/workhive-hq/workhive-backend-go/internal/pkg/validator"
)

type VerificationServiceImpl struct {
	verificationRepo    verification.VerificationRepository
	notificationService notification.NotificationService
	fileStorage         storage.FileStorage
	logger              *slog.Logger
}

func NewVerificationService(
	verificationRepo verification.VerificationRepository,
	notificationService notification.NotificationService,
	fileStorage storage.FileStorage,
	logger *slog.Logger,
) verification.VerificationService {
	return &VerificationServiceImpl{
		verificationRepo:    verificationRepo,
		notificationService: notificationService,
		fileStorage:         fileStorage,
		logger:              logger,
	}
}

// Helper to get company_id and user_id from JWT context
func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)

	return companyID, userID, nil
}

func toDocumentResponse(d *verification.Document) *verification.DocumentResponse {
	resp := &verification.DocumentResponse{
		ID:           d.ID,
		DocumentType: string(d.DocumentType),
		Label:        d.DocumentType.Label(),
		Weight:       d.DocumentType.Weight(),
		Status:       string(d.Status),
		URL:          d.URL,
		Name:         d.Name,
		UploadedAt:   d.UploadedAt.Format(time.RFC3339),
		Reason:       d.RejectionReason,
	}
	if d.ReviewedAt != nil {
		reviewed := d.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &reviewed
	}
	return resp
}

func toVerificationResponse(companyID string, agg *verification.CompanyVerification, docs map[verification.DocumentType]*verification.Document) verification.VerificationResponse {
	resp := verification.VerificationResponse{
		CompanyID:  companyID,
		Progress:   agg.Progress,
		Status:     string(agg.Status),
		VerifiedAt: agg.VerifiedAt,
	}
	for _, dt := range verification.RequiredDocumentTypes() {
		item := verification.ChecklistItemResponse{
			DocumentType: string(dt),
			Label:        dt.Label(),
			Weight:       dt.Weight(),
		}
		if doc, ok := docs[dt]; ok && doc != nil {
			item.Document = toDocumentResponse(doc)
		}
		resp.Checklist = append(resp.Checklist, item)
	}
	return resp
}

// recomputeAndSave rebuilds the aggregate from the full document map. Every
// transition goes through here; the stored progress is never patched.
func (s *VerificationServiceImpl) recomputeAndSave(ctx context.Context, companyID string) (verification.VerificationResponse, error) {
	docs, err := s.verificationRepo.GetDocuments(ctx, companyID)
	if err != nil {
		return verification.VerificationResponse{}, err
	}

	progress, status := verification.Recompute(docs)

	agg := &verification.CompanyVerification{
		CompanyID: companyID,
		Progress:  progress,
		Status:    status,
	}
	if status == verification.StatusVerified {
		now := time.Now()
		agg.VerifiedAt = &now
	}

	if err := s.verificationRepo.SaveAggregate(ctx, agg); err != nil {
		return verification.VerificationResponse{}, err
	}

	return toVerificationResponse(companyID, agg, docs), nil
}

func (s *VerificationServiceImpl) Upload(ctx context.Context, req verification.UploadDocumentRequest, file io.Reader, contentType string) (verification.VerificationResponse, error) {
	if err := req.Validate(); err != nil {
		return verification.VerificationResponse{}, err
	}
	if !verification.DocumentType(req.DocumentType).IsValid() {
		return verification.VerificationResponse{}, verification.ErrInvalidDocumentType
	}

	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return verification.VerificationResponse{}, err
	}

	docID := uuid.NewString()
	path := fmt.Sprintf("verification/%s/%s/%s%s", companyID, req.DocumentType, docID, filepath.Ext(req.FileName))
	stored, err := s.fileStorage.Upload(ctx, file, path, contentType)
	if err != nil {
		return verification.VerificationResponse{}, fmt.Errorf("failed to store document: %w", err)
	}

	url, err := s.fileStorage.GetURL(ctx, stored, 0)
	if err != nil {
		return verification.VerificationResponse{}, err
	}

	doc := &verification.Document{
		ID:           docID,
		CompanyID:    companyID,
		DocumentType: verification.DocumentType(req.DocumentType),
		Status:       verification.DocumentStatusPending,
		URL:          url,
		Name:         req.FileName,
		UploadedAt:   time.Now(),
		UploadedBy:   userID,
	}

	if err := s.verificationRepo.UpsertDocument(ctx, doc); err != nil {
		return verification.VerificationResponse{}, err
	}

	return s.recomputeAndSave(ctx, companyID)
}

func (s *VerificationServiceImpl) Approve(ctx context.Context, req verification.ReviewDocumentRequest) (verification.VerificationResponse, error) {
	return s.review(ctx, req, verification.DocumentStatusApproved)
}

func (s *VerificationServiceImpl) Reject(ctx context.Context, req verification.ReviewDocumentRequest) (verification.VerificationResponse, error) {
	if validator.IsEmpty(req.Reason) {
		return verification.VerificationResponse{}, verification.ErrRejectionReasonNeeded
	}
	return s.review(ctx, req, verification.DocumentStatusRejected)
}

func (s *VerificationServiceImpl) review(ctx context.Context, req verification.ReviewDocumentRequest, status verification.DocumentStatus) (verification.VerificationResponse, error) {
	if err := req.Validate(); err != nil {
		return verification.VerificationResponse{}, err
	}

	_, reviewerID, err := getClaimsFromContext(ctx)
	if err != nil {
		return verification.VerificationResponse{}, err
	}

	doc, err := s.verificationRepo.GetDocumentByID(ctx, req.DocumentID)
	if err != nil {
		return verification.VerificationResponse{}, err
	}
	if doc.Status != verification.DocumentStatusPending {
		return verification.VerificationResponse{}, verification.ErrDocumentNotPending
	}

	now := time.Now()
	doc.Status = status
	doc.ReviewedAt = &now
	doc.ReviewedBy = &reviewerID
	if status == verification.DocumentStatusRejected {
		doc.RejectionReason = &req.Reason
	} else {
		doc.RejectionReason = nil
	}

	// UpdateDocumentStatus matches on the document id; if a newer upload
	// replaced this row in the meantime it fails as superseded.
	if err := s.verificationRepo.UpdateDocumentStatus(ctx, doc); err != nil {
		return verification.VerificationResponse{}, err
	}

	resp, err := s.recomputeAndSave(ctx, doc.CompanyID)
	if err != nil {
		return verification.VerificationResponse{}, err
	}

	s.notifyReview(ctx, doc, status, resp.Status)

	return resp, nil
}

func (s *VerificationServiceImpl) Get(ctx context.Context) (verification.VerificationResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return verification.VerificationResponse{}, err
	}

	docs, err := s.verificationRepo.GetDocuments(ctx, companyID)
	if err != nil {
		return verification.VerificationResponse{}, err
	}

	// Serve the derived values even when no aggregate row exists yet.
	progress, status := verification.Recompute(docs)
	agg, err := s.verificationRepo.GetAggregate(ctx, companyID)
	if err != nil {
		agg = &verification.CompanyVerification{CompanyID: companyID, Progress: progress, Status: status}
	}

	return toVerificationResponse(companyID, agg, docs), nil
}

func (s *VerificationServiceImpl) ReconcileAll(ctx context.Context) error {
	companyIDs, err := s.verificationRepo.ListCompanyIDsWithDocuments(ctx)
	if err != nil {
		return err
	}

	for _, companyID := range companyIDs {
		if _, err := s.recomputeAndSave(ctx, companyID); err != nil {
			s.logger.Error("failed to reconcile company verification",
				slog.String("company_id", companyID),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}

func (s *VerificationServiceImpl) notifyReview(ctx context.Context, doc *verification.Document, status verification.DocumentStatus, aggStatus string) {
	nType := notification.TypeDocumentApproved
	title := "Document approved"
	message := fmt.Sprintf("Your %s was approved.", doc.DocumentType.Label())
	if status == verification.DocumentStatusRejected {
		nType = notification.TypeDocumentRejected
		title = "Document rejected"
		reason := ""
		if doc.RejectionReason != nil {
			reason = *doc.RejectionReason
		}
		message = fmt.Sprintf("Your %s was rejected: %s", doc.DocumentType.Label(), reason)
	}

	n := &notification.Notification{
		ID:          uuid.NewString(),
		CompanyID:   doc.CompanyID,
		RecipientID: doc.CompanyID,
		Type:        nType,
		Title:       title,
		Message:     message,
	}
	if err := s.notificationService.Notify(ctx, n); err != nil {
		s.logger.Warn("failed to create notification", slog.String("error", err.Error()))
	}

	if aggStatus == string(verification.StatusVerified) {
		v := &notification.Notification{
			ID:          uuid.NewString(),
			CompanyID:   doc.CompanyID,
			RecipientID: doc.CompanyID,
			Type:        notification.TypeCompanyVerified,
			Title:       "Company verified",
			Message:     "All required documents are approved. Your company is now verified.",
		}
		if err := s.notificationService.Notify(ctx, v); err != nil {
			s.logger.Warn("failed to create notification", slog.String("error", err.Error()))
		}
	}
}
