// Package hashing provides the deterministic hash accumulator used for
// transform cache keys.
package hashing

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
)

// Hash is a finalized digest, stored as raw bytes and rendered as hex.
type Hash struct {
	sum [sha256.Size]byte
}

func (h Hash) String() string { return hex.EncodeToString(h.sum[:]) }

func (h Hash) Equal(other Hash) bool { return h.sum == other.sum }

// Bytes returns a copy of the raw digest.
func (h Hash) Bytes() []byte {
	out := make([]byte, len(h.sum))
	copy(out, h.sum[:])
	return out
}

// Hasher accumulates fields into a single digest. Every field is
// length-prefixed so that adjacent values can never be confused for one
// another regardless of their content.
type Hasher struct {
	h hash.Hash
}

func NewHasher() *Hasher {
	return &Hasher{h: sha256.New()}
}

func (a *Hasher) PutBytes(b []byte) {
	var prefix [8]byte
	binary.BigEndian.PutUint64(prefix[:], uint64(len(b)))
	a.h.Write(prefix[:])
	a.h.Write(b)
}

func (a *Hasher) PutString(s string) { a.PutBytes([]byte(s)) }

func (a *Hasher) PutInt(v int64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	a.PutBytes(buf[:])
}

func (a *Hasher) PutBool(v bool) {
	if v {
		a.PutBytes([]byte{1})
	} else {
		a.PutBytes([]byte{0})
	}
}

// Hash finalizes the accumulated fields.
func (a *Hasher) Hash() Hash {
	var out Hash
	copy(out.sum[:], a.h.Sum(nil))
	return out
}
