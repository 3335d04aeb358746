package elasticsearch

import (
	"errors"
	"fmt"
)

var (
	// Configuration errors, detectable before any network call.
	ErrNotConnected = errors.New("client not initialized - call Connect or New first")
	ErrMissingIndex = errors.New("no index name: model declares no default and no override was given")
	ErrMissingID    = errors.New("document id missing")

	ErrNotFound = errors.New("document not found")

	// Response shape errors.
	ErrInvalidResponse = errors.New("invalid elasticsearch response")
	ErrMarshalFailed   = errors.New("failed to marshal document")
	ErrDecodeFailed    = errors.New("failed to decode response")

	// Transport errors, wrapping the underlying cause.
	ErrIndexRequestFailed  = errors.New("index request failed")
	ErrGetRequestFailed    = errors.New("get request failed")
	ErrDeleteRequestFailed = errors.New("delete request failed")
	ErrSearchRequestFailed = errors.New("search request failed")
	ErrBulkRequestFailed   = errors.New("bulk request failed")
)

// BulkItemError is one failed action from a committed bulk request.
type BulkItemError struct {
	Op     string // "index" or "delete"
	Pos    int    // position of the originating action within the session
	Index  string
	ID     string
	Status int
	Type   string
	Reason string
}

func (e BulkItemError) String() string {
	return fmt.Sprintf("action %d (%s %s/%s): status %d %s: %s", e.Pos, e.Op, e.Index, e.ID, e.Status, e.Type, e.Reason)
}

// BulkError reports the failed subset of a committed bulk request. Items keep
// the relative order in which the actions were added to the session. Actions
// not listed here were applied by the engine and stay applied.
type BulkError struct {
	Actions int // total number of submitted actions
	Items   []BulkItemError
}

func (e *BulkError) Error() string {
	return fmt.Sprintf("bulk commit: %d of %d actions failed", len(e.Items), e.Actions)
}
