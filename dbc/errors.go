package dbc

import (
	"github.com/pkg/errors"
)

var (
	// ErrNoKeysOrHashes is returned when a lockscript carries no public-key
	// and no pubkey-hash literals at all, so there is nothing to commit
	// into. Callers typically react by choosing a different container.
	ErrNoKeysOrHashes = errors.New("lockscript contains no keys or key hashes")

	// ErrUnknownHashesOnly is returned when a lockscript carries pubkey-hash
	// literals but no keys, and none of the hashes matches the target key.
	ErrUnknownHashesOnly = errors.New("lockscript contains only non-matching key hashes")

	// ErrKeyNotFound is returned when a lockscript carries public-key
	// literals but none of them matches the target key.
	ErrKeyNotFound = errors.New("lockscript does not contain the target public key")

	// ErrUnsupportedScriptPubkey is returned when a scriptPubkey does not
	// match any standard output template this library can embed into.
	ErrUnsupportedScriptPubkey = errors.New("unsupported scriptPubkey template")

	// ErrInvalidTweak is returned when the derived tweak scalar is zero or
	// exceeds the curve order, or when the tweaked point is the point at
	// infinity. This is a hard failure and is never retried: the caller must
	// surface it and redesign the container.
	ErrInvalidTweak = errors.New("invalid tweak derived from key and message")
)
