package mongo

import (
	"testing"
	"time"
)

func TestClientOptions(t *testing.T) {
	cfg := Config{URI: "mongodb://localhost:27017", Database: "household"}
	opts := clientOptions(cfg, 3*time.Second)

	if got := opts.GetURI(); got != cfg.URI {
		t.Fatalf("unexpected URI: %q", got)
	}
	if opts.AppName == nil || *opts.AppName != appName {
		t.Fatalf("expected app name %q, got %v", appName, opts.AppName)
	}
	if opts.ServerSelectionTimeout == nil || *opts.ServerSelectionTimeout != 3*time.Second {
		t.Fatalf("expected 3s server selection timeout, got %v", opts.ServerSelectionTimeout)
	}
}
