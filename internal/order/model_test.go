package order

import (
	"regexp"
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusProcessing},
		{StatusConfirmed, StatusCancelled},
		{StatusProcessing, StatusShipped},
		{StatusProcessing, StatusCancelled},
		{StatusShipped, StatusDelivered},
	}
	for _, tc := range allowed {
		if !CanTransition(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be allowed", tc.from, tc.to)
		}
	}

	denied := []struct{ from, to Status }{
		{StatusPending, StatusShipped},
		{StatusPending, StatusDelivered},
		{StatusShipped, StatusCancelled},
		{StatusDelivered, StatusPending},
		{StatusDelivered, StatusCancelled},
		{StatusCancelled, StatusPending},
		{StatusCancelled, StatusConfirmed},
		{Status("bogus"), StatusConfirmed},
	}
	for _, tc := range denied {
		if CanTransition(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be rejected", tc.from, tc.to)
		}
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	all := []Status{StatusPending, StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}
	for _, to := range all {
		if CanTransition(StatusDelivered, to) {
			t.Errorf("delivered must be terminal, allowed -> %s", to)
		}
		if CanTransition(StatusCancelled, to) {
			t.Errorf("cancelled must be terminal, allowed -> %s", to)
		}
	}
}

func TestNewOrderNumber(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 30, 4, 0, time.UTC)
	n := NewOrderNumber(now)

	pattern := regexp.MustCompile(`^ABC-20260901-153004-\d{3}$`)
	if !pattern.MatchString(n) {
		t.Fatalf("order number %q does not match expected shape", n)
	}
}

func TestNewOrderNumberUsesUTC(t *testing.T) {
	loc := time.FixedZone("BST", 6*3600)
	local := time.Date(2026, 9, 1, 21, 30, 4, 0, loc)
	n := NewOrderNumber(local)

	pattern := regexp.MustCompile(`^ABC-20260901-153004-\d{3}$`)
	if !pattern.MatchString(n) {
		t.Fatalf("order number %q should be derived from UTC time", n)
	}
}
