package verification

import "errors"

var (
	ErrDocumentNotFound      = errors.New("verification document not found")
	ErrInvalidDocumentType   = errors.New("invalid verification document type")
	ErrDocumentNotPending    = errors.New("document is not pending review")
	ErrDocumentSuperseded    = errors.New("document has been superseded by a newer upload")
	ErrRejectionReasonNeeded = errors.New("rejection requires a reason")
	ErrVerificationNotFound  = errors.New("company verification not found")
)
