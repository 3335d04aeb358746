package elasticsearch

import (
	"go.uber.org/zap"

	"github.com/huynhanx03/go-elastic-odm/pkg/settings"
)

// Prefer passing a *Client explicitly; the package-wide default exists for
// callers that want the convenience of one process-wide connection.
var defaultClient *Client

// Connect initializes the package-wide default client. The first successful
// call wins: calling Connect again does not replace the connection, it logs a
// warning and returns the existing handle. Initialization is not synchronized;
// concurrent first calls are a race the caller must avoid.
func Connect(cfg settings.Elasticsearch, log *zap.Logger) (*Client, error) {
	if log == nil {
		log = zap.NewNop()
	}

	if defaultClient != nil {
		log.Warn("elasticsearch default client already initialized, keeping existing connection",
			zap.Strings("ignored_addresses", cfg.Addresses))
		return defaultClient, nil
	}

	client, err := New(cfg)
	if err != nil {
		return nil, err
	}

	defaultClient = client
	log.Info("elasticsearch default client initialized", zap.Strings("addresses", cfg.Addresses))
	return client, nil
}

// Default returns the client set by Connect.
func Default() (*Client, error) {
	if defaultClient == nil {
		return nil, ErrNotConnected
	}
	return defaultClient, nil
}
