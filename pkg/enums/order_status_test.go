package enums

import "testing"

func TestOrderStatusHappyPath(t *testing.T) {
	t.Parallel()

	sequence := []OrderStatus{
		OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusPreparing,
		OrderStatusReady,
		OrderStatusCompleted,
	}
	for i := 0; i < len(sequence)-1; i++ {
		if !sequence[i].CanTransition(sequence[i+1]) {
			t.Fatalf("%s -> %s should be allowed", sequence[i], sequence[i+1])
		}
	}
}

func TestOrderStatusNoSkipping(t *testing.T) {
	t.Parallel()

	if OrderStatusPending.CanTransition(OrderStatusPreparing) {
		t.Fatal("pending -> preparing skips confirmed")
	}
	if OrderStatusPending.CanTransition(OrderStatusReady) {
		t.Fatal("pending -> ready skips two states")
	}
	if OrderStatusConfirmed.CanTransition(OrderStatusCompleted) {
		t.Fatal("confirmed -> completed skips states")
	}
	if OrderStatusReady.CanTransition(OrderStatusConfirmed) {
		t.Fatal("backward transition allowed")
	}
}

func TestOrderStatusCancellation(t *testing.T) {
	t.Parallel()

	for _, from := range []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing, OrderStatusReady} {
		if !from.CanTransition(OrderStatusCancelled) {
			t.Fatalf("%s should be cancellable", from)
		}
	}
	if OrderStatusCompleted.CanTransition(OrderStatusCancelled) {
		t.Fatal("completed is terminal")
	}
	if OrderStatusCancelled.CanTransition(OrderStatusPending) {
		t.Fatal("cancelled is terminal")
	}
}

func TestOrderStatusTerminalStates(t *testing.T) {
	t.Parallel()

	for _, terminal := range []OrderStatus{OrderStatusCompleted, OrderStatusCancelled} {
		for _, target := range validOrderStatuses {
			if terminal.CanTransition(target) {
				t.Fatalf("%s -> %s allowed from terminal state", terminal, target)
			}
		}
	}
}

func TestOrderStatusMetaCoversAllStatuses(t *testing.T) {
	t.Parallel()

	for _, status := range validOrderStatuses {
		meta := status.Meta()
		if meta.Label == "" || meta.Badge == "" {
			t.Fatalf("missing metadata for %s", status)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	t.Parallel()

	if _, err := ParseOrderStatus("preparing"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseOrderStatus("shipped"); err == nil {
		t.Fatal("unknown status should not parse")
	}
}
