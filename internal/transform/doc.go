// Package transform executes artifact transforms and computes their cache
// keys. A Transform pairs a registered action implementation with an
// isolated parameter snapshot; its secondary-input hash is derived exactly
// once, under a single-flight lock, from the implementation identity and a
// deterministic fingerprint of the declared input properties. Outputs an
// action declares are staged, contained to the allowed roots, and
// validated before they are handed back.
package transform
