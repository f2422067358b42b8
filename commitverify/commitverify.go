// Package commitverify defines the algebra shared by every commitment scheme
// in this library: the roles a type can play (message, container, commitment)
// and the two scheme shapes (standalone and embedded).
//
// A standalone commitment is produced from a message alone; verification is
// "recommit and compare". An embedded commitment is produced by
// deterministically modifying an existing container (a public key, a script,
// an output); verification recovers the original container from the
// commitment, re-runs the embedding and compares. A concrete commitment type
// implements exactly one of the two shapes.
package commitverify

// Verifier is the behavior common to all commitment objects: given the
// revealed message, check that the commitment binds to it. Implementations
// must map every internal recomputation error to false — callers of
// RevealVerify only ever need a boolean.
type Verifier interface {
	RevealVerify(msg []byte) bool
}

// Equaler constrains commitment types to support the equality comparison
// verification is built on. Commitment types containing slices cannot rely on
// ==, so equality is method-based throughout.
type Equaler[C any] interface {
	Equal(other C) bool
}

// EmbedFunc is the deterministic embedding procedure of an embedded scheme:
// it consumes a container and a message and produces a commitment or a typed
// error. Two calls with equal arguments must produce equal commitments.
type EmbedFunc[T any, C Equaler[C]] func(container T, msg []byte) (C, error)

// RevealVerify implements the embedded-shape verification contract: re-run
// the embedding over the original container and compare with the stored
// commitment. Any embedding error means the commitment cannot correspond to
// the message, so the result is false rather than an error.
func RevealVerify[T any, C Equaler[C]](embed EmbedFunc[T, C], commitment C, container T, msg []byte) bool {
	recomputed, err := embed(container, msg)
	if err != nil {
		return false
	}
	return recomputed.Equal(commitment)
}

// StandaloneRevealVerify implements the standalone-shape verification
// contract: recommit to the message and compare.
func StandaloneRevealVerify[M any, C Equaler[C]](commitTo func(msg M) C, commitment C, msg M) bool {
	return commitTo(msg).Equal(commitment)
}
