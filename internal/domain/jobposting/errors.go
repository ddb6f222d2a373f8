package jobposting

import "errors"

var (
	ErrPostingNotFound      = errors.New("job posting not found")
	ErrPostingAlreadyClosed = errors.New("job posting already closed")
)
