// ABOUTME: Tests for the debounce controller
// ABOUTME: Covers generation invalidation and out-of-order response handling

package debounce

import (
	"testing"
	"time"
)

func TestBumpInvalidatesEarlierGenerations(t *testing.T) {
	c := New(300 * time.Millisecond)

	c.Bump()
	first := SettledMsg{Gen: 1}
	c.Bump()

	if c.Settled(first) {
		t.Error("expected the first generation to be stale after a second bump")
	}
	if !c.Settled(SettledMsg{Gen: 2}) {
		t.Error("expected the latest generation to settle")
	}
}

func TestSingleBumpSettles(t *testing.T) {
	c := New(300 * time.Millisecond)

	c.Bump()

	if !c.Settled(SettledMsg{Gen: 1}) {
		t.Error("expected a lone bump to settle")
	}
}

func TestCancelInvalidatesPendingTimers(t *testing.T) {
	c := New(300 * time.Millisecond)

	c.Bump()
	c.Cancel()

	if c.Settled(SettledMsg{Gen: 1}) {
		t.Error("expected cancel to invalidate the pending timer")
	}
}

func TestBumpCommandCarriesGeneration(t *testing.T) {
	c := New(time.Millisecond)

	cmd := c.Bump()
	msg, ok := cmd().(SettledMsg)
	if !ok {
		t.Fatalf("expected SettledMsg, got %T", cmd())
	}
	if msg.Gen != 1 {
		t.Errorf("expected generation 1, got %d", msg.Gen)
	}
}

func TestAcceptInOrder(t *testing.T) {
	c := New(300 * time.Millisecond)

	s1 := c.Next()
	if !c.Accept(s1) {
		t.Error("expected the only outstanding response to be accepted")
	}

	s2 := c.Next()
	if !c.Accept(s2) {
		t.Error("expected the next in-order response to be accepted")
	}
}

func TestAcceptDiscardsStaleResponse(t *testing.T) {
	c := New(300 * time.Millisecond)

	s1 := c.Next()
	s2 := c.Next()

	if c.Accept(s1) {
		t.Error("expected the superseded response to be discarded")
	}
	if !c.Accept(s2) {
		t.Error("expected the latest response to be accepted")
	}
}

func TestAcceptDiscardsLateArrivalAfterNewerApplied(t *testing.T) {
	c := New(300 * time.Millisecond)

	s1 := c.Next()
	s2 := c.Next()

	if !c.Accept(s2) {
		t.Fatal("expected the latest response to be accepted")
	}
	if c.Accept(s1) {
		t.Error("expected the older response to be discarded after a newer one applied")
	}
	if c.Accept(s2) {
		t.Error("expected a duplicate response to be discarded")
	}
}
