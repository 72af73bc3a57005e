package enums

import "testing"

func TestPOTransitionTableIsTotal(t *testing.T) {
	for _, status := range validPOStatuses {
		if _, ok := poTransitions[status]; !ok {
			t.Fatalf("status %s missing from transition table", status)
		}
	}
	if len(poTransitions) != len(validPOStatuses) {
		t.Fatalf("transition table has %d entries, want %d", len(poTransitions), len(validPOStatuses))
	}
}

func TestPOStatusForwardOnly(t *testing.T) {
	if !POStatusOpen.CanTransitionTo(POStatusOrdered) {
		t.Fatal("open must transition to ordered")
	}
	if POStatusOrdered.CanTransitionTo(POStatusOpen) {
		t.Fatal("ordered must not go back to open")
	}
	if POStatusInTransitChina.CanTransitionTo(POStatusArrivedHub) {
		t.Fatal("skipping in_transit_usa must be rejected")
	}
	if len(POStatusCompleted.NextStatuses()) != 0 {
		t.Fatal("completed is terminal")
	}
}

func TestPOStatusAcceptsOrders(t *testing.T) {
	accepting := map[POStatus]bool{POStatusDraft: true, POStatusOpen: true}
	for _, status := range validPOStatuses {
		if status.AcceptsOrders() != accepting[status] {
			t.Fatalf("AcceptsOrders(%s) = %v", status, status.AcceptsOrders())
		}
	}
}

func TestParsePOStatus(t *testing.T) {
	if _, err := ParsePOStatus("in_transit_china"); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := ParsePOStatus("shipped"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestConsolidationModeConditions(t *testing.T) {
	if !ConsolidationModeTime.UsesTime() || ConsolidationModeTime.UsesQuantity() {
		t.Fatal("time mode uses only the time condition")
	}
	if ConsolidationModeQuantity.UsesTime() || !ConsolidationModeQuantity.UsesQuantity() {
		t.Fatal("quantity mode uses only the quantity condition")
	}
	if !ConsolidationModeHybrid.UsesTime() || !ConsolidationModeHybrid.UsesQuantity() {
		t.Fatal("hybrid mode uses both conditions")
	}
}
