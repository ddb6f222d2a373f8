package verification

// Recompute derives the aggregate progress and status from the current
// document map. Pure: callers run it after every document transition and
// overwrite the stored aggregate with the result.
//
//	not_started     no documents uploaded
//	in_progress     some required types still missing a document
//	pending_review  all types present, not all approved
//	verified        every required type's current document is approved
//
// Progress is the weight sum of approved types; pending, rejected and absent
// types contribute nothing. verified iff progress == 100.
func Recompute(docs map[DocumentType]*Document) (int, VerificationStatus) {
	required := RequiredDocumentTypes()

	present := 0
	progress := 0
	for _, docType := range required {
		doc, ok := docs[docType]
		if !ok || doc == nil {
			continue
		}
		present++
		if doc.Status == DocumentStatusApproved {
			progress += docType.Weight()
		}
	}

	switch {
	case present == 0:
		return 0, StatusNotStarted
	case present < len(required):
		return progress, StatusInProgress
	case progress == 100:
		return progress, StatusVerified
	default:
		return progress, StatusPendingReview
	}
}
