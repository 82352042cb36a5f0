package hashing

import "testing"

func TestHasher_Deterministic(t *testing.T) {
	a := NewHasher()
	a.PutString("name")
	a.PutInt(42)

	b := NewHasher()
	b.PutString("name")
	b.PutInt(42)

	if !a.Hash().Equal(b.Hash()) {
		t.Fatal("identical field sequences must hash identically")
	}
}

func TestHasher_FramingPreventsAmbiguity(t *testing.T) {
	// "ab"+"c" and "a"+"bc" concatenate to the same bytes; the length
	// prefix must keep them apart.
	a := NewHasher()
	a.PutString("ab")
	a.PutString("c")

	b := NewHasher()
	b.PutString("a")
	b.PutString("bc")

	if a.Hash().Equal(b.Hash()) {
		t.Fatal("field boundaries must contribute to the hash")
	}
}

func TestHasher_OrderSensitive(t *testing.T) {
	a := NewHasher()
	a.PutString("x")
	a.PutString("y")

	b := NewHasher()
	b.PutString("y")
	b.PutString("x")

	if a.Hash().Equal(b.Hash()) {
		t.Fatal("field order must contribute to the hash")
	}
}

func TestHash_StringIsHex(t *testing.T) {
	h := NewHasher()
	h.PutBool(true)
	s := h.Hash().String()
	if len(s) != 64 {
		t.Fatalf("want 64 hex chars, got %d (%q)", len(s), s)
	}
}
