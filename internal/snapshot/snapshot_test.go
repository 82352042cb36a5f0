package snapshot

import (
	"testing"

	"morph/internal/hashing"
)

func digest(t *testing.T, value any) hashing.Hash {
	t.Helper()
	s, err := NewValues().Snapshot(value)
	if err != nil {
		t.Fatalf("Snapshot(%v): %v", value, err)
	}
	h := hashing.NewHasher()
	s.AppendTo(h)
	return h.Hash()
}

func TestValues_EqualValuesEqualSnapshots(t *testing.T) {
	a := digest(t, map[string]any{"mode": "fast", "level": 3})
	b := digest(t, map[string]any{"level": 3, "mode": "fast"})
	if !a.Equal(b) {
		t.Fatal("map insertion order must not affect the snapshot")
	}
}

func TestValues_DistinguishesValues(t *testing.T) {
	a := digest(t, map[string]any{"level": 3})
	b := digest(t, map[string]any{"level": 4})
	if a.Equal(b) {
		t.Fatal("different values must snapshot differently")
	}
}

func TestValues_DistinguishesTypes(t *testing.T) {
	if digest(t, "3").Equal(digest(t, 3)) {
		t.Fatal(`string "3" and int 3 must not collide`)
	}
	if digest(t, nil).Equal(digest(t, "")) {
		t.Fatal("nil and empty string must not collide")
	}
}

func TestValues_ListOrderMatters(t *testing.T) {
	a := digest(t, []string{"x", "y"})
	b := digest(t, []string{"y", "x"})
	if a.Equal(b) {
		t.Fatal("list element order is part of the value")
	}
}

func TestValues_NestedEquality(t *testing.T) {
	a := digest(t, map[string]any{"opts": []any{"a", map[string]any{"k": true}}})
	b := digest(t, map[string]any{"opts": []any{"a", map[string]any{"k": true}}})
	if !a.Equal(b) {
		t.Fatal("equal nested structures must snapshot identically")
	}
}

func TestValues_UnsupportedType(t *testing.T) {
	type opaque struct{ x int }
	if _, err := NewValues().Snapshot(opaque{1}); err == nil {
		t.Fatal("expected error for unsupported type")
	}
}
