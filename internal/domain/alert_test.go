package domain

import "testing"

func TestStatus_Terminal(t *testing.T) {
	cases := map[Status]bool{
		StatusPending:      false,
		StatusAcknowledged: false,
		StatusCompleted:    true,
		StatusDismissed:    true,
	}
	for s, want := range cases {
		if got := s.Terminal(); got != want {
			t.Errorf("Terminal(%s) = %v, want %v", s, got, want)
		}
	}
}

func TestStatus_CanTransition_LegalMoves(t *testing.T) {
	legal := []struct{ from, to Status }{
		{StatusPending, StatusAcknowledged},
		{StatusPending, StatusCompleted},
		{StatusPending, StatusDismissed},
		{StatusAcknowledged, StatusCompleted},
		{StatusAcknowledged, StatusDismissed},
	}
	for _, c := range legal {
		if !c.from.CanTransition(c.to) {
			t.Errorf("expected %s -> %s to be legal", c.from, c.to)
		}
	}
}

func TestStatus_CanTransition_IllegalMoves(t *testing.T) {
	illegal := []struct{ from, to Status }{
		{StatusAcknowledged, StatusPending},
		{StatusCompleted, StatusPending},
		{StatusCompleted, StatusAcknowledged},
		{StatusCompleted, StatusDismissed},
		{StatusDismissed, StatusPending},
		{StatusDismissed, StatusCompleted},
		{StatusPending, StatusPending},
	}
	for _, c := range illegal {
		if c.from.CanTransition(c.to) {
			t.Errorf("expected %s -> %s to be illegal", c.from, c.to)
		}
	}
}

func TestPriority_Valid(t *testing.T) {
	for _, p := range []Priority{PriorityHigh, PriorityMedium, PriorityLow} {
		if !p.Valid() {
			t.Errorf("expected %q to be valid", p)
		}
	}
	if Priority("urgent").Valid() {
		t.Error("expected unknown priority to be invalid")
	}
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusAcknowledged, StatusCompleted, StatusDismissed} {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if Status("archived").Valid() {
		t.Error("expected unknown status to be invalid")
	}
}
