package elasticsearch

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// Session accumulates save and delete actions, possibly across different
// models and indices, and submits them as a single bulk request on Commit.
// "Batch" means one network round trip, not one transaction: the engine still
// applies each action independently.
//
// A session holds no network resources between commits, only the pending
// action list. It is not safe for concurrent use; one writer per session.
// Abandoning a session with pending actions silently discards them - only
// Commit drains the list.
type Session struct {
	client  ElasticClient
	pending []bulkAction
}

// NewSession creates an empty session bound to a client.
func NewSession(client ElasticClient) *Session {
	return &Session{client: client}
}

// AddSave appends an index/upsert action for the document. No I/O happens
// until Commit. Adding the same document twice submits it twice; the engine's
// last-write-wins applies.
func (s *Session) AddSave(doc Document, opts ...Option) {
	o := applyOptions(opts)
	s.pending = append(s.pending, bulkAction{
		op:    opIndex,
		doc:   doc,
		id:    doc.GetID(),
		index: o.Index,
	})
}

// AddDelete appends a delete action for the document's identity.
func (s *Session) AddDelete(doc Document, opts ...Option) error {
	if doc == nil || doc.GetID() == "" {
		return ErrMissingID
	}
	o := applyOptions(opts)
	s.pending = append(s.pending, bulkAction{
		op:    opDelete,
		doc:   doc,
		id:    doc.GetID(),
		index: o.Index,
	})
	return nil
}

// AddDeleteID appends a delete action for a bare id. With no model attached,
// the index must come from WithIndex here or the commit will fail fast.
func (s *Session) AddDeleteID(id string, opts ...Option) error {
	if id == "" {
		return ErrMissingID
	}
	o := applyOptions(opts)
	s.pending = append(s.pending, bulkAction{
		op:    opDelete,
		id:    id,
		index: o.Index,
	})
	return nil
}

// Len reports the number of pending actions.
func (s *Session) Len() int {
	return len(s.pending)
}

// Commit submits all pending actions as one bulk request and matches the
// engine's per-item results back to them in order.
//
// An empty session is a no-op. Index resolution failures and transport
// failures abort before anything is applied and leave the pending list
// intact. Once the engine has processed the batch the list is drained,
// succeeded saves get engine-assigned ids written back, and any failed items
// are reported together as a *BulkError - succeeded items stay applied, and
// retrying the failures means adding fresh actions.
func (s *Session) Commit(ctx context.Context, opts ...Option) error {
	if len(s.pending) == 0 {
		return nil
	}

	// Resolve every action's index before building anything: one unresolvable
	// action fails the whole commit with zero network calls.
	indices := make([]string, len(s.pending))
	for i, act := range s.pending {
		index, err := ResolveIndex(act.index, act.defaultIndex())
		if err != nil {
			return fmt.Errorf("%w: action %d (%s)", ErrMissingIndex, i, act.op)
		}
		indices[i] = index
	}

	body, err := encodeBulkBody(s.pending, indices)
	if err != nil {
		return err
	}

	o := applyOptions(opts)
	req := esapi.BulkRequest{
		Body:    body,
		Refresh: o.refresh(),
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBulkRequestFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		// Whole-request rejection: nothing was applied, keep the buffer.
		return fmt.Errorf("%w: %s", ErrBulkRequestFailed, res.Status())
	}

	// The engine processed the batch: the buffer drains from here on, whatever
	// the per-item outcomes are.
	submitted := s.pending
	s.pending = nil

	var response bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}

	if len(response.Items) != len(submitted) {
		return fmt.Errorf("%w: %d results for %d actions", ErrInvalidResponse, len(response.Items), len(submitted))
	}

	bulkErr := &BulkError{Actions: len(submitted)}
	for i, item := range response.Items {
		result, err := resultFor(item, submitted[i].op)
		if err != nil {
			return err
		}

		if result.failed() {
			itemErr := BulkItemError{
				Op:     submitted[i].op,
				Pos:    i,
				Index:  result.Index,
				ID:     result.ID,
				Status: result.Status,
			}
			if itemErr.Index == "" {
				itemErr.Index = indices[i]
			}
			if itemErr.ID == "" {
				itemErr.ID = submitted[i].id
			}
			if result.Error != nil {
				itemErr.Type = result.Error.Type
				itemErr.Reason = result.Error.Reason
			}
			bulkErr.Items = append(bulkErr.Items, itemErr)
			continue
		}

		// Succeeded saves may carry an engine-assigned id.
		if submitted[i].op == opIndex && result.ID != "" {
			submitted[i].doc.SetID(result.ID)
		}
	}

	if len(bulkErr.Items) > 0 {
		return bulkErr
	}
	return nil
}
