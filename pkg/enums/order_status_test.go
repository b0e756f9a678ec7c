package enums

import "testing"

func TestOrderStatusProgressSteps(t *testing.T) {
	tests := []struct {
		status OrderStatus
		step   int
	}{
		{OrderStatusPending, 1},
		{OrderStatusConfirmed, 2},
		{OrderStatusProcessing, 3},
		{OrderStatusShipped, 4},
		{OrderStatusCompleted, 5},
		{OrderStatusCancelled, 0},
		{OrderStatus("bogus"), 0},
	}

	for _, tt := range tests {
		if got := tt.status.ProgressStep(); got != tt.step {
			t.Fatalf("status %q expected step %d got %d", tt.status, tt.step, got)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("shipped")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != OrderStatusShipped {
		t.Fatalf("unexpected status %q", status)
	}

	if _, err := ParseOrderStatus("teleported"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	if !OrderStatusCancelled.IsTerminal() {
		t.Fatal("cancelled should be terminal")
	}
	if !OrderStatusCompleted.IsTerminal() {
		t.Fatal("completed should be terminal")
	}
	if OrderStatusShipped.IsTerminal() {
		t.Fatal("shipped should not be terminal")
	}
}
