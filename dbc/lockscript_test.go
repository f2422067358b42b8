package dbc

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/diop/go-lnpbp/txscript"
)

// payToKeyScript builds <key> OP_CHECKSIG.
func payToKeyScript(t *testing.T, serializedKey []byte) []byte {
	t.Helper()
	script, err := txscript.NewScriptBuilder().
		AddData(serializedKey).AddOp(txscript.OP_CHECKSIG).Script()
	require.NoError(t, err)
	return script
}

// payToKeyHashScript builds OP_DUP OP_HASH160 <hash160(key)> OP_EQUALVERIFY
// OP_CHECKSIG.
func payToKeyHashScript(t *testing.T, pubKey *btcec.PublicKey) []byte {
	t.Helper()
	script, err := txscript.PayToPubKeyHashScript(
		btcutil.Hash160(pubKey.SerializeCompressed()))
	require.NoError(t, err)
	return script
}

// multisigScript builds an m-of-n OP_CHECKMULTISIG script over the keys.
func multisigScript(t *testing.T, m int, keys ...*btcec.PublicKey) []byte {
	t.Helper()
	builder := txscript.NewScriptBuilder().AddInt64(int64(m))
	for _, pubKey := range keys {
		builder.AddData(pubKey.SerializeCompressed())
	}
	script, err := builder.AddInt64(int64(len(keys))).
		AddOp(txscript.OP_CHECKMULTISIG).Script()
	require.NoError(t, err)
	return script
}

func TestLockscriptNoKeysOrHashes(t *testing.T) {
	t.Parallel()

	keys := testKeys(t, 1)
	sha256Hash := bytes.Repeat([]byte{0x5a}, 32)

	timelock, err := txscript.NewScriptBuilder().
		AddInt64(12).AddOp(txscript.OP_CHECKSEQUENCEVERIFY).Script()
	require.NoError(t, err)
	preimage, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_SHA256).AddData(sha256Hash).
		AddOp(txscript.OP_EQUAL).Script()
	require.NoError(t, err)

	for _, script := range [][]byte{timelock, preimage} {
		_, err := CommitToLockscript(LockscriptContainer{
			Script: script,
			Pubkey: keys[0],
		}, []byte("test message"))
		require.True(t, errors.Is(err, ErrNoKeysOrHashes),
			"expected ErrNoKeysOrHashes, got %v", err)
	}
}

func TestLockscriptUnknownHashesOnly(t *testing.T) {
	t.Parallel()

	keys := testKeys(t, 5)

	for _, foreign := range keys[1:] {
		_, err := CommitToLockscript(LockscriptContainer{
			Script: payToKeyHashScript(t, foreign),
			Pubkey: keys[0],
		}, []byte("test message"))
		require.True(t, errors.Is(err, ErrUnknownHashesOnly),
			"expected ErrUnknownHashesOnly, got %v", err)
	}
}

func TestLockscriptKeyNotFound(t *testing.T) {
	t.Parallel()

	keys := testKeys(t, 5)

	for _, foreign := range keys[1:] {
		_, err := CommitToLockscript(LockscriptContainer{
			Script: payToKeyScript(t, foreign.SerializeCompressed()),
			Pubkey: keys[0],
		}, []byte("test message"))
		require.True(t, errors.Is(err, ErrKeyNotFound),
			"expected ErrKeyNotFound, got %v", err)
	}
}

func TestLockscriptKnownKey(t *testing.T) {
	t.Parallel()

	keys := testKeys(t, 4)
	msg := []byte("test message")

	for _, pubKey := range keys {
		container := LockscriptContainer{
			Script: payToKeyScript(t, pubKey.SerializeCompressed()),
			Pubkey: pubKey,
		}
		commitment, err := CommitToLockscript(container, msg)
		require.NoError(t, err)
		require.True(t, commitment.RevealVerify(msg))
		require.False(t, commitment.RevealVerify([]byte("other message")))
		require.False(t, bytes.Contains(commitment.Script,
			pubKey.SerializeCompressed()),
			"original key must not remain in the rewritten script")
	}
}

func TestLockscriptKnownKeyHash(t *testing.T) {
	t.Parallel()

	keys := testKeys(t, 4)
	msg := []byte("test message")

	for _, pubKey := range keys {
		container := LockscriptContainer{
			Script: payToKeyHashScript(t, pubKey),
			Pubkey: pubKey,
		}
		commitment, err := CommitToLockscript(container, msg)
		require.NoError(t, err)
		require.True(t, commitment.RevealVerify(msg))

		originalHash := btcutil.Hash160(pubKey.SerializeCompressed())
		require.False(t, bytes.Contains(commitment.Script, originalHash),
			"original key hash must not remain in the rewritten script")
	}
}

func TestLockscriptUncompressedKeyMatches(t *testing.T) {
	t.Parallel()

	keys := testKeys(t, 1)
	msg := []byte("test message")

	// The script carries the key uncompressed; the container target is the
	// same point. They must match, and the substitution must come back
	// compressed.
	container := LockscriptContainer{
		Script: payToKeyScript(t, keys[0].SerializeUncompressed()),
		Pubkey: keys[0],
	}
	commitment, err := CommitToLockscript(container, msg)
	require.NoError(t, err)
	require.True(t, commitment.RevealVerify(msg))

	pubkeyCommitment, err := CommitToPubkey(keys[0], msg)
	require.NoError(t, err)
	require.True(t, bytes.Contains(commitment.Script,
		pubkeyCommitment.Tweaked.SerializeCompressed()))
	require.False(t, bytes.Contains(commitment.Script,
		keys[0].SerializeUncompressed()))
}

func TestLockscriptMultisig(t *testing.T) {
	t.Parallel()

	keys := testKeys(t, 5)
	msg := []byte("test message")

	scripts := [][]byte{
		multisigScript(t, 2, keys[0], keys[1]),
		multisigScript(t, 3, keys[0], keys[1], keys[2], keys[3], keys[4]),
	}

	for _, script := range scripts {
		container := LockscriptContainer{Script: script, Pubkey: keys[1]}
		commitment, err := CommitToLockscript(container, msg)
		require.NoError(t, err)
		require.True(t, commitment.RevealVerify(msg))
	}
}

func TestLockscriptRepeatedKeyAllBranchesRewritten(t *testing.T) {
	t.Parallel()

	keys := testKeys(t, 2)
	msg := []byte("test message")

	// The target key guards three separate branches; every occurrence must
	// be substituted identically.
	target := keys[0].SerializeCompressed()
	script, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_IF).
		AddData(target).AddOp(txscript.OP_CHECKSIG).
		AddOp(txscript.OP_ELSE).
		AddOp(txscript.OP_IF).
		AddData(target).AddOp(txscript.OP_CHECKSIG).
		AddOp(txscript.OP_ELSE).
		AddData(keys[1].SerializeCompressed()).AddOp(txscript.OP_CHECKSIGVERIFY).
		AddData(target).AddOp(txscript.OP_CHECKSIG).
		AddOp(txscript.OP_ENDIF).
		AddOp(txscript.OP_ENDIF).
		Script()
	require.NoError(t, err)

	container := LockscriptContainer{Script: script, Pubkey: keys[0]}
	commitment, err := CommitToLockscript(container, msg)
	require.NoError(t, err)
	require.True(t, commitment.RevealVerify(msg))

	pubkeyCommitment, err := CommitToPubkey(keys[0], msg)
	require.NoError(t, err)
	require.Equal(t, 3, bytes.Count(commitment.Script,
		pubkeyCommitment.Tweaked.SerializeCompressed()),
		"all three occurrences must be rewritten")
	require.Zero(t, bytes.Count(commitment.Script, target))
	require.Equal(t, 1, bytes.Count(commitment.Script,
		keys[1].SerializeCompressed()),
		"the unrelated key must stay untouched")
}

func TestLockscriptCommitmentEquality(t *testing.T) {
	t.Parallel()

	keys := testKeys(t, 1)
	msg := []byte("test message")
	container := LockscriptContainer{
		Script: payToKeyScript(t, keys[0].SerializeCompressed()),
		Pubkey: keys[0],
	}

	first, err := CommitToLockscript(container, msg)
	require.NoError(t, err)
	second, err := CommitToLockscript(container, msg)
	require.NoError(t, err)

	require.True(t, first.Equal(second))
	require.Equal(t, first.Script, second.Script,
		"embedding must be bit-identical across calls")
}
