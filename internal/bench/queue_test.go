package bench

import "testing"

func makeQueue(n int) *workQueue {
	items := make([]workItem, n)
	for i := range items {
		items[i] = workItem{index: i, path: "img"}
	}
	return newWorkQueue(items)
}

func TestWorkQueue_PopHeadOrder(t *testing.T) {
	q := makeQueue(3)

	for want := 0; want < 3; want++ {
		item, ok := q.popHead()
		if !ok {
			t.Fatalf("expected item %d, queue empty", want)
		}
		if item.index != want {
			t.Errorf("expected index %d, got %d", want, item.index)
		}
	}

	if _, ok := q.popHead(); ok {
		t.Error("expected empty queue")
	}
}

func TestWorkQueue_StealTailTakesTail(t *testing.T) {
	donor := makeQueue(6)
	thief := newWorkQueue(nil)

	moved := donor.stealTail(thief, 3)
	if moved != 3 {
		t.Fatalf("expected 3 items moved, got %d", moved)
	}

	// Thief receives the donor's tail (indices 3..5) in original order.
	for want := 3; want < 6; want++ {
		item, ok := thief.popHead()
		if !ok {
			t.Fatalf("expected stolen item %d", want)
		}
		if item.index != want {
			t.Errorf("expected index %d, got %d", want, item.index)
		}
	}

	// Donor keeps its head (indices 0..2).
	if donor.len() != 3 {
		t.Errorf("expected donor to keep 3 items, got %d", donor.len())
	}
}

func TestWorkQueue_StealTailDonorKeepsOne(t *testing.T) {
	donor := makeQueue(4)
	thief := newWorkQueue(nil)

	moved := donor.stealTail(thief, 10)
	if moved != 3 {
		t.Errorf("expected steal capped at 3, got %d", moved)
	}
	if donor.len() != 1 {
		t.Errorf("expected donor to keep exactly 1 item, got %d", donor.len())
	}
}

func TestWorkQueue_StealTailSingleItemNotStolen(t *testing.T) {
	donor := makeQueue(1)
	thief := newWorkQueue(nil)

	if moved := donor.stealTail(thief, 1); moved != 0 {
		t.Errorf("expected no steal from single-item queue, got %d", moved)
	}
	if donor.len() != 1 {
		t.Errorf("donor lost its item: len %d", donor.len())
	}
}

func TestWorkQueue_StealTailEmptyDonor(t *testing.T) {
	donor := newWorkQueue(nil)
	thief := newWorkQueue(nil)

	if moved := donor.stealTail(thief, 5); moved != 0 {
		t.Errorf("expected no steal from empty queue, got %d", moved)
	}
}

func TestWorkQueue_StolenItemsAheadOfExisting(t *testing.T) {
	donor := makeQueue(4)
	thief := newWorkQueue([]workItem{{index: 99, path: "img"}})

	donor.stealTail(thief, 2)

	// Stolen items land at the head of the thief's queue.
	item, _ := thief.popHead()
	if item.index != 2 {
		t.Errorf("expected stolen index 2 first, got %d", item.index)
	}
}
