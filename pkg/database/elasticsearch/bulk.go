package elasticsearch

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	opIndex  = "index"
	opDelete = "delete"
)

// bulkAction is one pending mutation. Saves carry the document; deletes carry
// the identity (and the document too when one was given, for its default index).
type bulkAction struct {
	op    string
	doc   Document
	id    string
	index string // per-action override
}

// defaultIndex returns the model's declared index, if the action has a model.
func (a bulkAction) defaultIndex() string {
	if a.doc == nil {
		return ""
	}
	return a.doc.IndexName()
}

type bulkMeta struct {
	Index string `json:"_index"`
	ID    string `json:"_id,omitempty"`
}

// encodeBulkBody renders the actions as the newline-delimited body the bulk
// endpoint expects: one meta line per action, plus a source line for saves.
// indices holds the already-resolved target index per action.
func encodeBulkBody(actions []bulkAction, indices []string) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	for i, act := range actions {
		meta, err := json.Marshal(map[string]bulkMeta{
			act.op: {Index: indices[i], ID: act.id},
		})
		if err != nil {
			return nil, fmt.Errorf("%w: action %d: %v", ErrMarshalFailed, i, err)
		}
		buf.Write(meta)
		buf.WriteByte('\n')

		if act.op == opIndex {
			source, err := json.Marshal(act.doc)
			if err != nil {
				return nil, fmt.Errorf("%w: action %d: %v", ErrMarshalFailed, i, err)
			}
			buf.Write(source)
			buf.WriteByte('\n')
		}
	}
	return &buf, nil
}

// bulkResponse mirrors the engine's _bulk response body. Items come back one
// per submitted action, in submission order, each keyed by the action type.
type bulkResponse struct {
	Took   int                         `json:"took"`
	Errors bool                        `json:"errors"`
	Items  []map[string]bulkResultItem `json:"items"`
}

type bulkResultItem struct {
	Index  string            `json:"_index"`
	ID     string            `json:"_id"`
	Result string            `json:"result"`
	Status int               `json:"status"`
	Error  *bulkErrorDetails `json:"error"`
}

type bulkErrorDetails struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

func (it bulkResultItem) failed() bool {
	return it.Error != nil || it.Status >= 400
}

// resultFor extracts the result of one response item for the given action
// type. The engine keys each item by the operation that produced it.
func resultFor(item map[string]bulkResultItem, op string) (bulkResultItem, error) {
	if result, ok := item[op]; ok {
		return result, nil
	}
	for _, result := range item {
		return result, nil
	}
	return bulkResultItem{}, fmt.Errorf("%w: empty bulk response item", ErrInvalidResponse)
}
