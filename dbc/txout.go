package dbc

import (
	"github.com/diop/go-lnpbp/commitverify"
)

// TxoutContainer composes a value-carrying transaction output: the value is
// held constant while the scriptPubkey container carries the embedding.
type TxoutContainer struct {
	Value           uint64
	ScriptContainer ScriptPubkeyContainer
}

// TxoutCommitment is a full transaction output whose scriptPubkey commits to
// a message. No cryptography of its own: verification of the composite is
// verification of the embedded scriptPubkey commitment with the value
// compared for exact equality.
type TxoutCommitment struct {
	Value            uint64
	ScriptCommitment *ScriptPubkeyCommitment
}

// CommitToTxout embeds msg into the output's scriptPubkey, keeping the value
// untouched. Sub-component errors propagate unchanged.
func CommitToTxout(container TxoutContainer, msg []byte) (*TxoutCommitment, error) {
	scriptCommitment, err := CommitToScriptPubkey(container.ScriptContainer, msg)
	if err != nil {
		return nil, err
	}
	return &TxoutCommitment{
		Value:            container.Value,
		ScriptCommitment: scriptCommitment,
	}, nil
}

// OriginalContainer returns the container the commitment was produced from.
func (c *TxoutCommitment) OriginalContainer() TxoutContainer {
	return TxoutContainer{
		Value:           c.Value,
		ScriptContainer: c.ScriptCommitment.OriginalContainer(),
	}
}

// Equal reports whether two commitments carry the same value and the same
// scriptPubkey commitment.
func (c *TxoutCommitment) Equal(other *TxoutCommitment) bool {
	return other != nil && c.Value == other.Value &&
		c.ScriptCommitment.Equal(other.ScriptCommitment)
}

// RevealVerify re-runs the embedding over the original container and compares
// the composite outputs.
func (c *TxoutCommitment) RevealVerify(msg []byte) bool {
	return commitverify.RevealVerify(CommitToTxout, c, c.OriginalContainer(), msg)
}
