package dbc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTxoutCommitmentRoundTrip(t *testing.T) {
	t.Parallel()

	keys := testKeys(t, 1)
	msg := []byte("test message")
	container := TxoutContainer{
		Value:           100_000_000,
		ScriptContainer: ScriptPubkeyContainer{Method: MethodKeyHash, Pubkey: keys[0]},
	}

	commitment, err := CommitToTxout(container, msg)
	require.NoError(t, err)
	require.Equal(t, container.Value, commitment.Value)
	require.True(t, commitment.RevealVerify(msg))
	require.False(t, commitment.RevealVerify([]byte("other message")))
	require.Equal(t, container, commitment.OriginalContainer())
}

func TestTxoutCommitmentCommutesWithVerification(t *testing.T) {
	t.Parallel()

	keys := testKeys(t, 1)
	msg := []byte("test message")
	scriptContainer := ScriptPubkeyContainer{Method: MethodBareKey, Pubkey: keys[0]}

	composite, err := CommitToTxout(TxoutContainer{
		Value:           42,
		ScriptContainer: scriptContainer,
	}, msg)
	require.NoError(t, err)
	embedded, err := CommitToScriptPubkey(scriptContainer, msg)
	require.NoError(t, err)

	// Verifying the composite is exactly verifying the embedded commitment
	// with the value held constant.
	require.Equal(t, embedded.RevealVerify(msg), composite.RevealVerify(msg))
	require.True(t, composite.ScriptCommitment.Equal(embedded))
}

func TestTxoutCommitmentValueDistinguishes(t *testing.T) {
	t.Parallel()

	keys := testKeys(t, 1)
	msg := []byte("test message")
	scriptContainer := ScriptPubkeyContainer{Method: MethodKeyHash, Pubkey: keys[0]}

	first, err := CommitToTxout(TxoutContainer{Value: 1, ScriptContainer: scriptContainer}, msg)
	require.NoError(t, err)
	second, err := CommitToTxout(TxoutContainer{Value: 2, ScriptContainer: scriptContainer}, msg)
	require.NoError(t, err)

	require.False(t, first.Equal(second),
		"outputs with different values must not compare equal")
}

func TestTxoutCommitmentPropagatesErrors(t *testing.T) {
	t.Parallel()

	keys := testKeys(t, 2)

	container := TxoutContainer{
		Value: 7,
		ScriptContainer: ScriptPubkeyContainer{
			Method: MethodBareScript,
			Pubkey: keys[0],
			Script: payToKeyScript(t, keys[1].SerializeCompressed()),
		},
	}
	_, err := CommitToTxout(container, []byte("test message"))
	require.ErrorIs(t, err, ErrKeyNotFound)
}
