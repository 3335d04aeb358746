package elasticsearch

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"os"
	"time"

	elasticsearchV8 "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/pkg/errors"

	"github.com/huynhanx03/go-elastic-odm/pkg/settings"
	"github.com/huynhanx03/go-elastic-odm/pkg/utils"
)

const defaultPingTimeout = 5 // Seconds

// Client wraps the official Elasticsearch client behind the ElasticClient
// interface so repositories and sessions can be exercised against fakes.
type Client struct {
	es     *elasticsearchV8.Client
	config settings.Elasticsearch
}

var _ ElasticClient = (*Client)(nil)

// New builds a client from the given settings and verifies the cluster is
// reachable with a single Info call.
func New(cfg settings.Elasticsearch) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	esCfg := elasticsearchV8.Config{
		Addresses:           cfg.Addresses,
		Username:            cfg.Username,
		Password:            cfg.Password,
		APIKey:              cfg.APIKey,
		CloudID:             cfg.CloudID,
		CompressRequestBody: cfg.CompressBody,
		MaxRetries:          cfg.MaxRetries,
	}

	if cfg.CACertPath != "" {
		cert, err := os.ReadFile(cfg.CACertPath)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read CA certificate")
		}
		esCfg.CACert = cert
	}

	if cfg.InsecureSkipVerify {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		esCfg.Transport = transport
	}

	es, err := elasticsearchV8.NewClient(esCfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create elasticsearch client")
	}

	client := &Client{es: es, config: cfg}
	if err := client.ping(); err != nil {
		return nil, err
	}

	return client, nil
}

func (c *Client) ping() error {
	timeout := utils.ToDuration(c.config.RequestTimeout)
	if timeout == 0 {
		timeout = defaultPingTimeout * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	res, err := c.es.Info(c.es.Info.WithContext(ctx))
	if err != nil {
		return errors.Wrap(err, "failed to ping elasticsearch")
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.Errorf("failed to ping elasticsearch: %s", res.Status())
	}
	return nil
}

func (c *Client) Info(o ...func(*esapi.InfoRequest)) (*esapi.Response, error) {
	return c.es.Info(o...)
}

func (c *Client) Index(index string, body io.Reader, o ...func(*esapi.IndexRequest)) (*esapi.Response, error) {
	return c.es.Index(index, body, o...)
}

func (c *Client) Get(index string, id string, o ...func(*esapi.GetRequest)) (*esapi.Response, error) {
	return c.es.Get(index, id, o...)
}

func (c *Client) Delete(index string, id string, o ...func(*esapi.DeleteRequest)) (*esapi.Response, error) {
	return c.es.Delete(index, id, o...)
}

func (c *Client) Exists(index string, id string, o ...func(*esapi.ExistsRequest)) (*esapi.Response, error) {
	return c.es.Exists(index, id, o...)
}

func (c *Client) Search(o ...func(*esapi.SearchRequest)) (*esapi.Response, error) {
	return c.es.Search(o...)
}

func (c *Client) Bulk(body io.Reader, o ...func(*esapi.BulkRequest)) (*esapi.Response, error) {
	return c.es.Bulk(body, o...)
}

// Perform implements esapi.Transport.
func (c *Client) Perform(req *http.Request) (*http.Response, error) {
	return c.es.Perform(req)
}
