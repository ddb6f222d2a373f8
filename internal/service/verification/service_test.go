package verification

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workhive-hq/workhive-backend-go/internal/domain/notification"
	"github.com/workhive-hq/workhive-backend-go/internal/domain/verification"
	"github.com/workhive-hq/workhive-backend-go/internal/pkg/jwt"
)

type fakeVerificationRepo struct {
	docs          map[verification.DocumentType]*verification.Document
	byID          map[string]*verification.Document
	statusUpdates []*verification.Document
	savedAggs     []*verification.CompanyVerification
	upserted      []*verification.Document
}

func newFakeVerificationRepo() *fakeVerificationRepo {
	return &fakeVerificationRepo{
		docs: map[verification.DocumentType]*verification.Document{},
		byID: map[string]*verification.Document{},
	}
}

func (f *fakeVerificationRepo) GetDocuments(ctx context.Context, companyID string) (map[verification.DocumentType]*verification.Document, error) {
	return f.docs, nil
}

func (f *fakeVerificationRepo) GetDocumentByID(ctx context.Context, id string) (*verification.Document, error) {
	doc, ok := f.byID[id]
	if !ok {
		return nil, verification.ErrDocumentNotFound
	}
	return doc, nil
}

func (f *fakeVerificationRepo) UpsertDocument(ctx context.Context, doc *verification.Document) error {
	f.upserted = append(f.upserted, doc)
	f.docs[doc.DocumentType] = doc
	f.byID[doc.ID] = doc
	return nil
}

func (f *fakeVerificationRepo) UpdateDocumentStatus(ctx context.Context, doc *verification.Document) error {
	f.statusUpdates = append(f.statusUpdates, doc)
	return nil
}

func (f *fakeVerificationRepo) GetAggregate(ctx context.Context, companyID string) (*verification.CompanyVerification, error) {
	return nil, verification.ErrVerificationNotFound
}

func (f *fakeVerificationRepo) SaveAggregate(ctx context.Context, agg *verification.CompanyVerification) error {
	f.savedAggs = append(f.savedAggs, agg)
	return nil
}

func (f *fakeVerificationRepo) ListCompanyIDsWithDocuments(ctx context.Context) ([]string, error) {
	return nil, nil
}

type fakeFileStorage struct {
	uploads []string
}

func (f *fakeFileStorage) Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error) {
	f.uploads = append(f.uploads, path)
	return path, nil
}

func (f *fakeFileStorage) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	return nil, nil
}

func (f *fakeFileStorage) Delete(ctx context.Context, path string) error {
	return nil
}

func (f *fakeFileStorage) GetURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return "https://files.local/" + path, nil
}

func (f *fakeFileStorage) Exists(ctx context.Context, path string) (bool, error) {
	return false, nil
}

type fakeNotifier struct {
	sent []*notification.Notification
}

func (f *fakeNotifier) Notify(ctx context.Context, n *notification.Notification) error {
	f.sent = append(f.sent, n)
	return nil
}

func (f *fakeNotifier) List(ctx context.Context, limit int) ([]notification.NotificationResponse, error) {
	return nil, nil
}

func (f *fakeNotifier) MarkRead(ctx context.Context, id string) error {
	return nil
}

func (f *fakeNotifier) Subscribe(ctx context.Context) (<-chan notification.NotificationResponse, func(), error) {
	return nil, func() {}, nil
}

func authedContext(t *testing.T, companyID string) context.Context {
	t.Helper()
	svc := jwt.NewJWTService("test-secret", "1h")
	tokenString, _, err := svc.GenerateAccessToken("reviewer-1", "admin@example.com", &companyID, "admin")
	require.NoError(t, err)
	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newServiceFixture() (*fakeVerificationRepo, *fakeFileStorage, verification.VerificationService) {
	repo := newFakeVerificationRepo()
	files := &fakeFileStorage{}
	svc := NewVerificationService(repo, &fakeNotifier{}, files, slog.Default())
	return repo, files, svc
}

func TestReject_RequiresNonBlankReason(t *testing.T) {
	t.Parallel()

	for _, reason := range []string{"", "   ", "\t\n"} {
		repo, _, svc := newServiceFixture()

		_, err := svc.Reject(authedContext(t, "company-1"), verification.ReviewDocumentRequest{
			DocumentID: uuid.NewString(),
			Reason:     reason,
		})
		require.ErrorIs(t, err, verification.ErrRejectionReasonNeeded, "reason %q", reason)
		assert.Empty(t, repo.statusUpdates)
	}
}

func TestReject_WithReasonRecordsRejection(t *testing.T) {
	t.Parallel()

	repo, _, svc := newServiceFixture()
	docID := uuid.NewString()
	doc := &verification.Document{
		ID:           docID,
		CompanyID:    "company-1",
		DocumentType: verification.DocumentTypeTaxCertificate,
		Status:       verification.DocumentStatusPending,
	}
	repo.byID[docID] = doc
	repo.docs[doc.DocumentType] = doc

	resp, err := svc.Reject(authedContext(t, "company-1"), verification.ReviewDocumentRequest{
		DocumentID: docID,
		Reason:     "document is illegible",
	})
	require.NoError(t, err)

	require.Len(t, repo.statusUpdates, 1)
	assert.Equal(t, verification.DocumentStatusRejected, repo.statusUpdates[0].Status)
	require.NotNil(t, repo.statusUpdates[0].RejectionReason)
	assert.Equal(t, "document is illegible", *repo.statusUpdates[0].RejectionReason)
	assert.Equal(t, string(verification.StatusInProgress), resp.Status)
}

func TestApprove_NonPendingDocumentRejected(t *testing.T) {
	t.Parallel()

	repo, _, svc := newServiceFixture()
	docID := uuid.NewString()
	repo.byID[docID] = &verification.Document{
		ID:           docID,
		CompanyID:    "company-1",
		DocumentType: verification.DocumentTypeDirectorID,
		Status:       verification.DocumentStatusApproved,
	}

	_, err := svc.Approve(authedContext(t, "company-1"), verification.ReviewDocumentRequest{DocumentID: docID})
	require.ErrorIs(t, err, verification.ErrDocumentNotPending)
	assert.Empty(t, repo.statusUpdates)
}

func TestUpload_UnknownDocumentType(t *testing.T) {
	t.Parallel()

	_, files, svc := newServiceFixture()

	_, err := svc.Upload(authedContext(t, "company-1"), verification.UploadDocumentRequest{
		DocumentType: "passport",
		FileName:     "passport.pdf",
	}, strings.NewReader("content"), "application/pdf")

	require.ErrorIs(t, err, verification.ErrInvalidDocumentType)
	assert.Empty(t, files.uploads, "nothing may be stored for an unrecognized type")
}
