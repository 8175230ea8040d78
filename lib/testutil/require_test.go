// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

type recordingT struct {
	failed  bool
	message string
}

func (r *recordingT) Helper() {}

// Fatalf records the failure and unwinds the calling goroutine, as
// testing.T.Fatalf does via runtime.Goexit.
func (r *recordingT) Fatalf(format string, args ...any) {
	r.failed = true
	r.message = fmt.Sprintf(format, args...)
	panic(r)
}

func runRecording(fn func(r *recordingT)) (r *recordingT) {
	r = &recordingT{}
	defer func() {
		if recovered := recover(); recovered != nil && recovered != r {
			panic(recovered)
		}
	}()
	fn(r)
	return r
}

func TestRequireReceiveValue(t *testing.T) {
	ch := make(chan int, 1)
	ch <- 7
	if got := RequireReceive(t, ch, time.Second, "value"); got != 7 {
		t.Errorf("RequireReceive = %d, want 7", got)
	}
}

func TestRequireReceiveTimeout(t *testing.T) {
	ch := make(chan int)
	r := runRecording(func(r *recordingT) {
		RequireReceive(r, ch, 10*time.Millisecond, "waiting for %s", "nothing")
	})
	if !r.failed {
		t.Fatal("expected failure on timeout")
	}
	if !strings.Contains(r.message, "waiting for nothing") {
		t.Errorf("message = %q, want formatted context", r.message)
	}
}

func TestRequireReceiveClosed(t *testing.T) {
	ch := make(chan int)
	close(ch)
	r := runRecording(func(r *recordingT) {
		RequireReceive(r, ch, time.Second)
	})
	if !r.failed || !strings.Contains(r.message, "closed") {
		t.Errorf("expected closed-channel failure, got failed=%v message=%q", r.failed, r.message)
	}
}

func TestRequireClosed(t *testing.T) {
	ch := make(chan struct{})
	close(ch)
	RequireClosed(t, ch, time.Second, "closed channel")

	open := make(chan struct{})
	r := runRecording(func(r *recordingT) {
		RequireClosed(r, open, 10*time.Millisecond, "open channel")
	})
	if !r.failed {
		t.Error("expected failure for a channel that never closes")
	}
}

func TestUniqueID(t *testing.T) {
	first := UniqueID("cid")
	second := UniqueID("cid")
	if first == second {
		t.Errorf("UniqueID returned %q twice", first)
	}
	if !strings.HasPrefix(first, "cid-") {
		t.Errorf("UniqueID = %q, want cid- prefix", first)
	}
}
