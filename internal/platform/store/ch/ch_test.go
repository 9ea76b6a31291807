package ch

import (
	"context"
	"testing"
)

// TestOpen rejects a malformed DSN before dialing
func TestOpen_BadDSN(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if _, err := Open(ctx, Config{URL: "://not-a-dsn"}); err == nil {
		t.Fatalf("Open expected error for malformed DSN, got nil")
	}
}

// TestInsert_EmptyRows is a no op and must not touch the connection
func TestInsert_EmptyRows(t *testing.T) {
	t.Parallel()

	cl := &CH{} // nil conn; safe because empty input short-circuits
	if err := cl.Insert(context.Background(), "events", nil); err != nil {
		t.Fatalf("Insert on empty rows returned error: %v", err)
	}
}

// TestClose on a zero client is safe
func TestClose_NilConn(t *testing.T) {
	t.Parallel()

	cl := &CH{}
	if err := cl.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
}
