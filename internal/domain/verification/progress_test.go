package verification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docWith(t DocumentType, status DocumentStatus) *Document {
	return &Document{ID: "doc-" + string(t), DocumentType: t, Status: status}
}

func allDocs(status DocumentStatus) map[DocumentType]*Document {
	docs := make(map[DocumentType]*Document)
	for _, dt := range RequiredDocumentTypes() {
		docs[dt] = docWith(dt, status)
	}
	return docs
}

func TestWeightsSumToOneHundred(t *testing.T) {
	t.Parallel()

	total := 0
	for _, dt := range RequiredDocumentTypes() {
		total += dt.Weight()
	}
	assert.Equal(t, 100, total)
}

func TestRecompute_NoDocuments(t *testing.T) {
	t.Parallel()

	progress, status := Recompute(map[DocumentType]*Document{})
	assert.Equal(t, 0, progress)
	assert.Equal(t, StatusNotStarted, status)
}

func TestRecompute_SomeTypesMissing(t *testing.T) {
	t.Parallel()

	docs := map[DocumentType]*Document{
		DocumentTypeBusinessRegistration: docWith(DocumentTypeBusinessRegistration, DocumentStatusApproved),
		DocumentTypeTaxCertificate:       docWith(DocumentTypeTaxCertificate, DocumentStatusPending),
	}

	progress, status := Recompute(docs)
	assert.Equal(t, DocumentTypeBusinessRegistration.Weight(), progress)
	assert.Equal(t, StatusInProgress, status)
}

func TestRecompute_AllPresentNotAllApproved(t *testing.T) {
	t.Parallel()

	docs := allDocs(DocumentStatusApproved)
	docs[DocumentTypeProofOfAddress].Status = DocumentStatusPending

	progress, status := Recompute(docs)
	assert.Equal(t, 100-DocumentTypeProofOfAddress.Weight(), progress)
	assert.Equal(t, StatusPendingReview, status)
}

func TestRecompute_RejectedContributesNothing(t *testing.T) {
	t.Parallel()

	docs := allDocs(DocumentStatusApproved)
	docs[DocumentTypeDirectorID].Status = DocumentStatusRejected

	progress, status := Recompute(docs)
	assert.Equal(t, 100-DocumentTypeDirectorID.Weight(), progress)
	assert.Equal(t, StatusPendingReview, status)
}

func TestRecompute_AllApprovedIsVerified(t *testing.T) {
	t.Parallel()

	progress, status := Recompute(allDocs(DocumentStatusApproved))
	assert.Equal(t, 100, progress)
	assert.Equal(t, StatusVerified, status)
}

// Verified iff progress == 100, in both directions.
func TestRecompute_VerifiedOnlyAtFullProgress(t *testing.T) {
	t.Parallel()

	for _, dt := range RequiredDocumentTypes() {
		docs := allDocs(DocumentStatusApproved)
		docs[dt].Status = DocumentStatusPending

		progress, status := Recompute(docs)
		require.Less(t, progress, 100, "dropping %s should lower progress", dt)
		assert.NotEqual(t, StatusVerified, status)
	}
}

func TestRecompute_ApprovingLastPendingVerifies(t *testing.T) {
	t.Parallel()

	docs := allDocs(DocumentStatusApproved)
	docs[DocumentTypeTaxCertificate].Status = DocumentStatusPending

	_, status := Recompute(docs)
	require.Equal(t, StatusPendingReview, status)

	docs[DocumentTypeTaxCertificate].Status = DocumentStatusApproved
	progress, status := Recompute(docs)
	assert.Equal(t, 100, progress)
	assert.Equal(t, StatusVerified, status)
}

// Verification is not sticky: replacing an approved document with a fresh
// pending upload drops the aggregate out of verified.
func TestRecompute_ReplacementRevokesVerified(t *testing.T) {
	t.Parallel()

	docs := allDocs(DocumentStatusApproved)
	_, status := Recompute(docs)
	require.Equal(t, StatusVerified, status)

	docs[DocumentTypeBusinessRegistration] = docWith(DocumentTypeBusinessRegistration, DocumentStatusPending)
	progress, status := Recompute(docs)
	assert.Equal(t, 100-DocumentTypeBusinessRegistration.Weight(), progress)
	assert.Equal(t, StatusPendingReview, status)
}

func TestRecompute_NilDocumentTreatedAsAbsent(t *testing.T) {
	t.Parallel()

	docs := allDocs(DocumentStatusApproved)
	docs[DocumentTypeProofOfAddress] = nil

	progress, status := Recompute(docs)
	assert.Equal(t, 100-DocumentTypeProofOfAddress.Weight(), progress)
	assert.Equal(t, StatusInProgress, status)
}
