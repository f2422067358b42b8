package dbc

import (
	"bytes"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"

	"github.com/diop/go-lnpbp/commitverify"
	"github.com/diop/go-lnpbp/txscript"
)

// LockscriptContainer holds a spending-condition script together with the one
// public key designated as the commitment target inside it. The key may occur
// in the script directly (compressed or uncompressed) or through its hash160.
type LockscriptContainer struct {
	Script []byte
	Pubkey *btcec.PublicKey
}

// LockscriptCommitment is a lockscript in which every occurrence of the
// container's target key (and of its hash) has been substituted by the
// tweaked counterpart committing to the message.
type LockscriptCommitment struct {
	Container LockscriptContainer
	Script    []byte
}

// CommitToLockscript embeds msg into the container's script:
//
//  1. The target key is tweaked with CommitToPubkey and its hash160 derived
//     from the compressed encodings of both keys.
//  2. Every node of the script is visited. Key literals equal to the target
//     (point equality, so compressed and uncompressed encodings match) are
//     substituted by the tweaked key; hash literals equal to the target's
//     hash are substituted by the tweaked key's hash. All occurrences are
//     rewritten, so a key repeated across script branches stays consistent.
//  3. The outcome is classified by what the traversal saw. A script with no
//     keys and no hashes fails with ErrNoKeysOrHashes, one with only foreign
//     hashes with ErrUnknownHashesOnly, one with only foreign keys with
//     ErrKeyNotFound. Callers branch on these to decide whether a different
//     container could succeed.
func CommitToLockscript(container LockscriptContainer, msg []byte) (*LockscriptCommitment, error) {
	pubkeyCommitment, err := CommitToPubkey(container.Pubkey, msg)
	if err != nil {
		return nil, err
	}
	originalHash := btcutil.Hash160(container.Pubkey.SerializeCompressed())
	tweakedHash := btcutil.Hash160(pubkeyCommitment.Tweaked.SerializeCompressed())

	var found, keysSeen, hashesSeen int
	script, err := txscript.ReplacePubkeysAndHashes(container.Script,
		func(pubKey *btcec.PublicKey) *btcec.PublicKey {
			keysSeen++
			if pubKey.IsEqual(container.Pubkey) {
				found++
				return pubkeyCommitment.Tweaked
			}
			return nil
		},
		func(hash []byte) []byte {
			hashesSeen++
			if bytes.Equal(hash, originalHash) {
				found++
				return tweakedHash
			}
			return nil
		})
	if err != nil {
		return nil, err
	}

	switch {
	case found == 0 && keysSeen == 0 && hashesSeen == 0:
		return nil, ErrNoKeysOrHashes
	case found == 0 && keysSeen == 0:
		return nil, ErrUnknownHashesOnly
	case found == 0:
		return nil, ErrKeyNotFound
	}

	return &LockscriptCommitment{Container: container, Script: script}, nil
}

// OriginalContainer returns the container the commitment was produced from.
func (c *LockscriptCommitment) OriginalContainer() LockscriptContainer {
	return c.Container
}

// Equal reports whether two commitments carry the same rewritten script.
func (c *LockscriptCommitment) Equal(other *LockscriptCommitment) bool {
	return other != nil && bytes.Equal(c.Script, other.Script)
}

// RevealVerify re-runs the embedding over the original container and compares
// the rewritten scripts.
func (c *LockscriptCommitment) RevealVerify(msg []byte) bool {
	return commitverify.RevealVerify(CommitToLockscript, c, c.OriginalContainer(), msg)
}
