package forecast

import (
	"testing"
	"time"
)

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	b := NewBreaker(3, time.Minute)

	for i := 0; i < 2; i++ {
		b.RecordFailure()
		if !b.Allow() {
			t.Fatalf("breaker opened after %d failures, threshold is 3", i+1)
		}
	}
	b.RecordFailure()
	if b.Allow() {
		t.Fatal("breaker should be open after 3 consecutive failures")
	}
	if b.State() != StateOpen {
		t.Errorf("state %s, want open", b.State())
	}
}

func TestBreaker_SuccessResets(t *testing.T) {
	b := NewBreaker(3, time.Minute)
	b.RecordFailure()
	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure()
	b.RecordFailure()
	if !b.Allow() {
		t.Fatal("success should reset the failure count")
	}
}

func TestBreaker_HalfOpenProbe(t *testing.T) {
	b := NewBreaker(1, time.Minute)
	clock := time.Now()
	b.now = func() time.Time { return clock }

	b.RecordFailure()
	if b.Allow() {
		t.Fatal("breaker should be open")
	}

	// Cooldown elapses: one probe is let through.
	clock = clock.Add(2 * time.Minute)
	if !b.Allow() {
		t.Fatal("breaker should allow a probe after cooldown")
	}

	// Probe fails: back to open for another full cooldown.
	b.RecordFailure()
	if b.Allow() {
		t.Fatal("failed probe must re-open the breaker")
	}

	// Probe succeeds next time: closed again.
	clock = clock.Add(2 * time.Minute)
	if !b.Allow() {
		t.Fatal("expected another probe after second cooldown")
	}
	b.RecordSuccess()
	if b.State() != StateClosed {
		t.Errorf("state %s, want closed after successful probe", b.State())
	}
}
