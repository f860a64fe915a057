package db

import (
	"context"
	"errors"
	"testing"
)

func TestNewPool_RequiresURL(t *testing.T) {
	if _, err := NewPool(context.Background(), "", 2); !errors.Is(err, ErrMissingURL) {
		t.Fatalf("expected ErrMissingURL, got %v", err)
	}
}

func TestNewPool_RejectsMalformedURL(t *testing.T) {
	if _, err := NewPool(context.Background(), "postgres://%zz", 2); err == nil {
		t.Fatalf("expected parse error")
	}
}
