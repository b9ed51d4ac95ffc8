// SPDX-License-Identifier: BSD-3-Clause

//go:build unix

package main

import (
	"context"
	"errors"
	"testing"
)

func TestIgnoreShutdownSwallowsErrorAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := ignoreShutdown(ctx, errors.New("listener closed")); err != nil {
		t.Fatalf("got %v, want nil once ctx is canceled", err)
	}
}

func TestIgnoreShutdownPropagatesErrorWhileRunning(t *testing.T) {
	ctx := context.Background()
	want := errors.New("boom")

	if err := ignoreShutdown(ctx, want); !errors.Is(err, want) {
		t.Fatalf("got %v, want %v", err, want)
	}
}

func TestIgnoreShutdownPassesThroughNil(t *testing.T) {
	if err := ignoreShutdown(context.Background(), nil); err != nil {
		t.Fatalf("got %v, want nil", err)
	}
}
