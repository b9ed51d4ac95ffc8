// SPDX-License-Identifier: BSD-3-Clause

package fanout

import (
	"testing"
	"time"
)

// TestSendReachesAllSubscribers covers S6: two subscribers both observe the
// same published message.
func TestSendReachesAllSubscribers(t *testing.T) {
	f := New[string]()
	done1 := make(chan struct{})
	done2 := make(chan struct{})
	defer close(done1)
	defer close(done2)

	ch1 := f.Subscribe(done1)
	ch2 := f.Subscribe(done2)

	f.Send("hello")

	for _, ch := range []<-chan string{ch1, ch2} {
		select {
		case got := <-ch:
			if got != "hello" {
				t.Fatalf("got %q, want %q", got, "hello")
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for fanout delivery")
		}
	}
}

func TestSendDropsDisconnectedSubscriber(t *testing.T) {
	f := New[string]()
	done := make(chan struct{})
	_ = f.Subscribe(done)

	close(done)

	// Give the dropped subscriber's goroutine a chance to observe done
	// being closed before asserting on subscriber count.
	f.Send("one")
	deadline := time.Now().Add(time.Second)
	for f.Count() != 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	if n := f.Count(); n != 0 {
		t.Fatalf("Count() = %d, want 0 after disconnected subscriber's done fired", n)
	}
}

func TestSendNoSubscribers(t *testing.T) {
	f := New[int]()
	f.Send(42)
}
