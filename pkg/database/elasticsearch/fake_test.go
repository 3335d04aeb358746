package elasticsearch

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// fakeTransport is an ElasticClient backed by canned responses. Every esapi
// request funnels through Perform, which makes it a call-count spy as well.
type fakeTransport struct {
	calls     int
	requests  []*http.Request
	bodies    []string
	responses []fakeResponse // consumed in order; the last one repeats
	err       error          // transport failure, returned for every call
}

type fakeResponse struct {
	status int
	body   string
}

var _ ElasticClient = (*fakeTransport)(nil)

func (f *fakeTransport) Perform(req *http.Request) (*http.Response, error) {
	f.calls++
	f.requests = append(f.requests, req)

	var body string
	if req.Body != nil {
		b, _ := io.ReadAll(req.Body)
		body = string(b)
	}
	f.bodies = append(f.bodies, body)

	if f.err != nil {
		return nil, f.err
	}

	resp := fakeResponse{status: http.StatusOK, body: "{}"}
	if len(f.responses) > 0 {
		resp = f.responses[0]
		if len(f.responses) > 1 {
			f.responses = f.responses[1:]
		}
	}

	return &http.Response{
		StatusCode: resp.status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(resp.body)),
	}, nil
}

func (f *fakeTransport) Info(o ...func(*esapi.InfoRequest)) (*esapi.Response, error) {
	req := esapi.InfoRequest{}
	for _, fn := range o {
		fn(&req)
	}
	return req.Do(context.Background(), f)
}

func (f *fakeTransport) Index(index string, body io.Reader, o ...func(*esapi.IndexRequest)) (*esapi.Response, error) {
	req := esapi.IndexRequest{Index: index, Body: body}
	for _, fn := range o {
		fn(&req)
	}
	return req.Do(context.Background(), f)
}

func (f *fakeTransport) Get(index string, id string, o ...func(*esapi.GetRequest)) (*esapi.Response, error) {
	req := esapi.GetRequest{Index: index, DocumentID: id}
	for _, fn := range o {
		fn(&req)
	}
	return req.Do(context.Background(), f)
}

func (f *fakeTransport) Delete(index string, id string, o ...func(*esapi.DeleteRequest)) (*esapi.Response, error) {
	req := esapi.DeleteRequest{Index: index, DocumentID: id}
	for _, fn := range o {
		fn(&req)
	}
	return req.Do(context.Background(), f)
}

func (f *fakeTransport) Exists(index string, id string, o ...func(*esapi.ExistsRequest)) (*esapi.Response, error) {
	req := esapi.ExistsRequest{Index: index, DocumentID: id}
	for _, fn := range o {
		fn(&req)
	}
	return req.Do(context.Background(), f)
}

func (f *fakeTransport) Search(o ...func(*esapi.SearchRequest)) (*esapi.Response, error) {
	req := esapi.SearchRequest{}
	for _, fn := range o {
		fn(&req)
	}
	return req.Do(context.Background(), f)
}

func (f *fakeTransport) Bulk(body io.Reader, o ...func(*esapi.BulkRequest)) (*esapi.Response, error) {
	req := esapi.BulkRequest{Body: body}
	for _, fn := range o {
		fn(&req)
	}
	return req.Do(context.Background(), f)
}

// Test models shared across unit tests.

// User declares a default index.
type User struct {
	BaseModel
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

func (User) IndexName() string { return "user" }

// Orphan declares no default index: every operation needs WithIndex.
type Orphan struct {
	BaseModel
	Name string `json:"name"`
}

func (Orphan) IndexName() string { return "" }
