package elasticsearch

import (
	"errors"
	"testing"

	"github.com/huynhanx03/go-elastic-odm/pkg/settings"
)

func TestDefault_NotConnected(t *testing.T) {
	t.Cleanup(func() { defaultClient = nil })
	defaultClient = nil

	if _, err := Default(); !errors.Is(err, ErrNotConnected) {
		t.Errorf("expected ErrNotConnected, got %v", err)
	}
}

func TestConnect_KeepsFirstClient(t *testing.T) {
	t.Cleanup(func() { defaultClient = nil })

	existing := &Client{}
	defaultClient = existing

	// A second Connect must not dial anywhere or replace the handle.
	client, err := Connect(settings.Elasticsearch{Addresses: []string{"http://localhost:9200"}}, nil)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	if client != existing {
		t.Error("repeated Connect must return the existing client")
	}

	got, err := Default()
	if err != nil || got != existing {
		t.Errorf("Default() = %v, %v; want the first client", got, err)
	}
}
