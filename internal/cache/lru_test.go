package cache

import "testing"

func TestLRUEvictsLeastRecent(t *testing.T) {
	c := New[string, int](2)
	c.Add("a", 1)
	c.Add("b", 2)
	c.Get("a") // a is now MRU
	c.Add("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatal("b should have been evicted")
	}
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("a = %d, %v", v, ok)
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
}

func TestLRUUpdate(t *testing.T) {
	c := New[string, int](2)
	c.Add("a", 1)
	c.Add("a", 5)
	if v, _ := c.Get("a"); v != 5 || c.Len() != 1 {
		t.Fatalf("update failed: v=%d len=%d", v, c.Len())
	}

	c.Add("b", 2)
	c.Add("c", 3)
	if _, ok := c.Get("a"); ok || c.Len() != 2 {
		t.Fatalf("stale entry kept: len=%d", c.Len())
	}
}

func TestNewPanicsOnZeroCapacity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	New[string, int](0)
}
