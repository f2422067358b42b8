package dbc

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/diop/go-lnpbp/commitverify"
)

// TaprootContainer composes a taproot output: the script-tree root hash is
// held constant while the intermediate (internal) key carries the embedding.
type TaprootContainer struct {
	ScriptRoot      chainhash.Hash
	IntermediateKey *btcec.PublicKey
}

// TaprootCommitment is a taproot output whose intermediate key commits to a
// message. As with TxoutCommitment this is pure composition: verifying the
// composite is verifying the embedded key commitment with the script root
// compared for exact equality.
type TaprootCommitment struct {
	ScriptRoot       chainhash.Hash
	PubkeyCommitment *PubkeyCommitment
}

// CommitToTaproot embeds msg into the container's intermediate key, keeping
// the script root untouched. Sub-component errors propagate unchanged.
func CommitToTaproot(container TaprootContainer, msg []byte) (*TaprootCommitment, error) {
	pubkeyCommitment, err := CommitToPubkey(container.IntermediateKey, msg)
	if err != nil {
		return nil, err
	}
	return &TaprootCommitment{
		ScriptRoot:       container.ScriptRoot,
		PubkeyCommitment: pubkeyCommitment,
	}, nil
}

// OriginalContainer returns the container the commitment was produced from.
func (c *TaprootCommitment) OriginalContainer() TaprootContainer {
	return TaprootContainer{
		ScriptRoot:      c.ScriptRoot,
		IntermediateKey: c.PubkeyCommitment.Original,
	}
}

// Equal reports whether two commitments carry the same script root and the
// same tweaked key.
func (c *TaprootCommitment) Equal(other *TaprootCommitment) bool {
	return other != nil && c.ScriptRoot == other.ScriptRoot &&
		c.PubkeyCommitment.Equal(other.PubkeyCommitment)
}

// RevealVerify re-runs the embedding over the original container and compares
// the composite outputs.
func (c *TaprootCommitment) RevealVerify(msg []byte) bool {
	return commitverify.RevealVerify(CommitToTaproot, c, c.OriginalContainer(), msg)
}
