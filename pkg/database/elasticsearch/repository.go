package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// documentPtr constrains PT to a pointer to T that satisfies Document, so
// repositories can allocate fresh instances when decoding responses.
type documentPtr[T any] interface {
	Document
	*T
}

// Repository provides single-document operations for one model type using
// generics. The default index comes from the model's IndexName and can be
// overridden per call with WithIndex.
type Repository[T any, PT documentPtr[T]] struct {
	client ElasticClient
	index  string
}

// NewRepository creates a repository bound to a client. The model's declared
// index is read once from the type; models without one must pass WithIndex on
// every call.
func NewRepository[T any, PT documentPtr[T]](client ElasticClient) *Repository[T, PT] {
	var zero T
	return &Repository[T, PT]{
		client: client,
		index:  PT(&zero).IndexName(),
	}
}

// Save indexes the document, creating it or overwriting the existing one when
// the document carries an id. When it does not, the engine assigns an id and
// it is written back onto the document.
func (r *Repository[T, PT]) Save(ctx context.Context, doc PT, opts ...Option) error {
	o := applyOptions(opts)
	index, err := ResolveIndex(o.Index, r.index)
	if err != nil {
		return err
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshalFailed, err)
	}

	req := esapi.IndexRequest{
		Index:      index,
		DocumentID: doc.GetID(),
		Body:       bytes.NewReader(body),
		Refresh:    o.refresh(),
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIndexRequestFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("%w: %s", ErrIndexRequestFailed, res.Status())
	}

	var response struct {
		ID string `json:"_id"`
	}
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	if response.ID == "" {
		return fmt.Errorf("%w: index response has no _id", ErrInvalidResponse)
	}
	doc.SetID(response.ID)

	return nil
}

// Get fetches a document by id and decodes it into a new model instance.
func (r *Repository[T, PT]) Get(ctx context.Context, id string, opts ...Option) (PT, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	o := applyOptions(opts)
	index, err := ResolveIndex(o.Index, r.index)
	if err != nil {
		return nil, err
	}

	req := esapi.GetRequest{
		Index:      index,
		DocumentID: id,
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGetRequestFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: id %s in index %s", ErrNotFound, id, index)
	}
	if res.IsError() {
		return nil, fmt.Errorf("%w: %s", ErrGetRequestFailed, res.Status())
	}

	var response struct {
		ID     string          `json:"_id"`
		Found  bool            `json:"found"`
		Source json.RawMessage `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	if !response.Found || len(response.Source) == 0 {
		return nil, fmt.Errorf("%w: missing _source or _id", ErrInvalidResponse)
	}

	doc := PT(new(T))
	if err := json.Unmarshal(response.Source, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	doc.SetID(response.ID)

	return doc, nil
}

// Delete removes the document by its identity.
func (r *Repository[T, PT]) Delete(ctx context.Context, doc PT, opts ...Option) error {
	if doc.GetID() == "" {
		return ErrMissingID
	}

	o := applyOptions(opts)
	index, err := ResolveIndex(o.Index, r.index)
	if err != nil {
		return err
	}

	req := esapi.DeleteRequest{
		Index:      index,
		DocumentID: doc.GetID(),
		Refresh:    o.refresh(),
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteRequestFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: id %s in index %s", ErrNotFound, doc.GetID(), index)
	}
	if res.IsError() {
		return fmt.Errorf("%w: %s", ErrDeleteRequestFailed, res.Status())
	}

	return nil
}

// Exists checks whether a document exists by its ID
func (r *Repository[T, PT]) Exists(ctx context.Context, id string, opts ...Option) (bool, error) {
	o := applyOptions(opts)
	index, err := ResolveIndex(o.Index, r.index)
	if err != nil {
		return false, err
	}

	req := esapi.ExistsRequest{
		Index:      index,
		DocumentID: id,
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrGetRequestFailed, err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	}
	return false, fmt.Errorf("%w: %s", ErrGetRequestFailed, res.Status())
}

// Search executes a raw query and decodes the hits into model instances. Query
// construction is the caller's business.
func (r *Repository[T, PT]) Search(ctx context.Context, query io.Reader, opts ...Option) ([]PT, error) {
	o := applyOptions(opts)
	index, err := ResolveIndex(o.Index, r.index)
	if err != nil {
		return nil, err
	}

	req := esapi.SearchRequest{
		Index: []string{index},
		Body:  query,
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchRequestFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("%w: %s", ErrSearchRequestFailed, res.Status())
	}

	var response struct {
		Hits struct {
			Hits []struct {
				ID     string          `json:"_id"`
				Source json.RawMessage `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}

	results := make([]PT, len(response.Hits.Hits))
	for i, hit := range response.Hits.Hits {
		doc := PT(new(T))
		if err := json.Unmarshal(hit.Source, doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
		}
		doc.SetID(hit.ID)
		results[i] = doc
	}

	return results, nil
}
