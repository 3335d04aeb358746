package elasticsearch

import (
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// ElasticClient defines the contract for Elasticsearch client operations
type ElasticClient interface {
	Info(o ...func(*esapi.InfoRequest)) (*esapi.Response, error)

	Index(index string, body io.Reader, o ...func(*esapi.IndexRequest)) (*esapi.Response, error)
	Get(index string, id string, o ...func(*esapi.GetRequest)) (*esapi.Response, error)
	Delete(index string, id string, o ...func(*esapi.DeleteRequest)) (*esapi.Response, error)
	Exists(index string, id string, o ...func(*esapi.ExistsRequest)) (*esapi.Response, error)

	Search(o ...func(*esapi.SearchRequest)) (*esapi.Response, error)
	Bulk(body io.Reader, o ...func(*esapi.BulkRequest)) (*esapi.Response, error)

	// Perform is required for esapi.Transport interface
	Perform(*http.Request) (*http.Response, error)
}

// Document is the contract every mapped model must satisfy. GetID/SetID expose
// the identity field (engine-assigned unless the caller supplies one) and
// IndexName declares the model's default index.
type Document interface {
	GetID() string
	SetID(id string)
	IndexName() string
}
