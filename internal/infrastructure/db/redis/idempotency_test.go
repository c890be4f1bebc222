package redis

import (
	"testing"
	"time"
)

func TestIdempotencyKey(t *testing.T) {
	if got := idempotencyKey("abc-123"); got != "idempotency:booking:abc-123" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestParseBookingID(t *testing.T) {
	id, err := parseBookingID("42")
	if err != nil || id != 42 {
		t.Fatalf("parseBookingID(42) = %d, %v", id, err)
	}
	for _, bad := range []string{"", "abc", "0", "-3"} {
		if _, err := parseBookingID(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestNewIdempotencyStoreDefaultsTTL(t *testing.T) {
	s := NewIdempotencyStore(nil, 0)
	if s.ttl != defaultIdempotencyTTL {
		t.Fatalf("ttl = %v, want %v", s.ttl, defaultIdempotencyTTL)
	}
	s = NewIdempotencyStore(nil, time.Minute)
	if s.ttl != time.Minute {
		t.Fatalf("ttl = %v, want 1m", s.ttl)
	}
}

func TestConfigOptions(t *testing.T) {
	opts := Config{Addr: "cache:6379", DB: 2}.options()
	if opts.Addr != "cache:6379" || opts.DB != 2 {
		t.Fatalf("unexpected options %+v", opts)
	}
	if opts.DialTimeout != defaultTimeout || opts.ReadTimeout != defaultTimeout {
		t.Fatalf("timeouts should default to %v, got dial=%v read=%v", defaultTimeout, opts.DialTimeout, opts.ReadTimeout)
	}

	opts = Config{Addr: "cache:6379", Timeout: time.Second}.options()
	if opts.WriteTimeout != time.Second {
		t.Fatalf("write timeout = %v, want 1s", opts.WriteTimeout)
	}
}
