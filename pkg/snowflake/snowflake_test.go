package snowflake

import "testing"

func TestGenIDUniqueAndIncreasing(t *testing.T) {
	if err := Init("2024-01-01", 1); err != nil {
		t.Fatalf("Init: %v", err)
	}
	seen := make(map[int64]struct{}, 1000)
	var last int64
	for i := 0; i < 1000; i++ {
		id := GenID()
		if id <= last {
			t.Fatalf("id %d not greater than %d", id, last)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = struct{}{}
		last = id
	}
}

func TestInitBadDate(t *testing.T) {
	if err := Init("2024/01/01", 1); err == nil {
		t.Fatal("expected parse error")
	}
}
