package transform

import "morph/internal/hashing"

// IdentityHasher supplies the stable byte sequence identifying which
// implementation will run. How that identity is derived (loaded code,
// plugin digest, ...) is the collaborator's concern.
type IdentityHasher interface {
	IdentityHash(actionName string) ([]byte, error)
}

// NameIdentity derives the identity from the registered action name and a
// fixed namespace. Sufficient for in-process actions whose behaviour is
// pinned by the engine build.
type NameIdentity struct{}

func (NameIdentity) IdentityHash(actionName string) ([]byte, error) {
	h := hashing.NewHasher()
	h.PutString("morph.action")
	h.PutString(actionName)
	return h.Hash().Bytes(), nil
}
