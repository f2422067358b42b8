// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"github.com/btcsuite/btcd/btcec/v2"
)

// KeyReplaceFunc is called once for every public-key literal found while
// traversing a script. Returning nil leaves the key unchanged; returning a
// key substitutes it, re-encoded in compressed form.
type KeyReplaceFunc func(pubKey *btcec.PublicKey) *btcec.PublicKey

// HashReplaceFunc is called once for every 20-byte hash literal found while
// traversing a script. Returning nil leaves the hash unchanged; returning a
// 20-byte slice substitutes it.
type HashReplaceFunc func(hash []byte) []byte

// ReplacePubkeysAndHashes traverses every node of the script and rewrites the
// key and hash literals selected by the callbacks, leaving all other nodes
// untouched. The whole script is always visited, so a key appearing in
// several branches is offered to keyFn once per occurrence.
//
// A data push is treated as a public-key literal when it is 33 or 65 bytes
// long and parses as a valid curve point; this normalizes compressed and
// uncompressed encodings of the same point to a single logical key. Pushes of
// exactly 20 bytes are treated as pubkey-hash literals. Substituted keys are
// always written back compressed, with the push re-encoded canonically.
//
// Rebuilding re-encodes every push with the canonical opcode for its length,
// matched or not, so a script carrying non-minimal pushes comes back
// normalized. The content of unmatched nodes is never altered, and canonical
// scripts round-trip byte-identically.
func ReplacePubkeysAndHashes(script []byte, keyFn KeyReplaceFunc, hashFn HashReplaceFunc) ([]byte, error) {
	pops, err := parseScript(script)
	if err != nil {
		return nil, err
	}

	for i := range pops {
		if !pops[i].isDataPush() {
			continue
		}
		switch len(pops[i].data) {
		case 33, 65:
			pubKey, err := btcec.ParsePubKey(pops[i].data)
			if err != nil {
				// Right-sized but not a curve point: an opaque
				// data push, not a key node.
				continue
			}
			if replacement := keyFn(pubKey); replacement != nil {
				pops[i].data = replacement.SerializeCompressed()
			}
		case 20:
			if replacement := hashFn(pops[i].data); replacement != nil {
				pops[i].data = replacement
			}
		}
	}

	return unparseScript(pops)
}
