package dbc

import (
	"bytes"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/pkg/errors"

	"github.com/diop/go-lnpbp/commitverify"
	"github.com/diop/go-lnpbp/txscript"
)

// ScriptPubkeyMethod selects the output template a commitment is embedded
// through. The set is closed; commit dispatch matches it exhaustively.
type ScriptPubkeyMethod uint8

const (
	// MethodBareKey embeds into the key of a pay-to-pubkey output.
	MethodBareKey ScriptPubkeyMethod = iota

	// MethodKeyHash embeds into the key hash of a pay-to-pubkey-hash output.
	MethodKeyHash

	// MethodScriptHash embeds into the redeem script behind a
	// pay-to-script-hash output.
	MethodScriptHash

	// MethodWitnessKeyHash embeds into the key hash of a version 0
	// pay-to-witness-pubkey-hash output.
	MethodWitnessKeyHash

	// MethodWitnessScriptHash embeds into the witness script behind a
	// version 0 pay-to-witness-script-hash output.
	MethodWitnessScriptHash

	// MethodBareScript embeds into a scriptPubkey that carries the spending
	// conditions directly, such as a bare multisig.
	MethodBareScript
)

var methodToName = []string{
	MethodBareKey:           "bare-key",
	MethodKeyHash:           "key-hash",
	MethodScriptHash:        "script-hash",
	MethodWitnessKeyHash:    "witness-key-hash",
	MethodWitnessScriptHash: "witness-script-hash",
	MethodBareScript:        "bare-script",
}

// String implements the Stringer interface.
func (m ScriptPubkeyMethod) String() string {
	if int(m) >= len(methodToName) {
		return "invalid"
	}
	return methodToName[m]
}

// ScriptPubkeyContainer carries everything needed to redo a scriptPubkey
// commitment: the template method, the target public key, and, for
// script-bearing methods, the source lockscript (redeem script, witness
// script, or the bare script itself).
type ScriptPubkeyContainer struct {
	Method ScriptPubkeyMethod
	Pubkey *btcec.PublicKey
	Script []byte
}

// NewScriptPubkeyContainer classifies scriptPubkey into one of the standard
// output templates and builds the container routing the commitment
// accordingly. pubkey is the tweak target; lockscript must carry the source
// script for script-hash, witness-script-hash and bare-script outputs and is
// ignored otherwise. Witness programs of version 1 and above (taproot has its
// own scheme) and scripts that do not parse are rejected with
// ErrUnsupportedScriptPubkey.
func NewScriptPubkeyContainer(scriptPubkey []byte, pubkey *btcec.PublicKey, lockscript []byte) (ScriptPubkeyContainer, error) {
	container := ScriptPubkeyContainer{Pubkey: pubkey}

	switch txscript.GetScriptClass(scriptPubkey) {
	case txscript.PubKeyTy:
		container.Method = MethodBareKey
	case txscript.PubKeyHashTy:
		container.Method = MethodKeyHash
	case txscript.ScriptHashTy:
		container.Method = MethodScriptHash
		container.Script = lockscript
	case txscript.WitnessV0PubKeyHashTy:
		container.Method = MethodWitnessKeyHash
	case txscript.WitnessV0ScriptHashTy:
		container.Method = MethodWitnessScriptHash
		container.Script = lockscript
	default:
		if version, _, ok := txscript.ParseWitnessProgram(scriptPubkey); ok && version > 0 {
			return ScriptPubkeyContainer{}, errors.Wrapf(ErrUnsupportedScriptPubkey,
				"witness program version %d", version)
		}
		if _, err := txscript.ReplacePubkeysAndHashes(scriptPubkey, neverReplaceKey, neverReplaceHash); err != nil {
			return ScriptPubkeyContainer{}, errors.Wrap(ErrUnsupportedScriptPubkey, err.Error())
		}
		container.Method = MethodBareScript
		container.Script = scriptPubkey
	}
	return container, nil
}

func neverReplaceKey(*btcec.PublicKey) *btcec.PublicKey { return nil }
func neverReplaceHash([]byte) []byte                    { return nil }

// ScriptPubkeyCommitment is a scriptPubkey whose key material commits to a
// message through the template selected by its container.
type ScriptPubkeyCommitment struct {
	Container    ScriptPubkeyContainer
	ScriptPubkey []byte
}

// CommitToScriptPubkey embeds msg into the output template described by the
// container. Key-bearing templates delegate to CommitToPubkey and rebuild the
// template around the tweaked key or its hash; script-bearing templates
// delegate to CommitToLockscript and rebuild the template around the
// rewritten script. Errors of the delegated step propagate unchanged.
func CommitToScriptPubkey(container ScriptPubkeyContainer, msg []byte) (*ScriptPubkeyCommitment, error) {
	var scriptPubkey []byte

	switch container.Method {
	case MethodBareKey:
		pubkeyCommitment, err := CommitToPubkey(container.Pubkey, msg)
		if err != nil {
			return nil, err
		}
		scriptPubkey, err = txscript.PayToPubKeyScript(pubkeyCommitment.Tweaked.SerializeCompressed())
		if err != nil {
			return nil, err
		}

	case MethodKeyHash, MethodWitnessKeyHash:
		pubkeyCommitment, err := CommitToPubkey(container.Pubkey, msg)
		if err != nil {
			return nil, err
		}
		tweakedHash := btcutil.Hash160(pubkeyCommitment.Tweaked.SerializeCompressed())
		if container.Method == MethodKeyHash {
			scriptPubkey, err = txscript.PayToPubKeyHashScript(tweakedHash)
		} else {
			scriptPubkey, err = txscript.PayToWitnessPubKeyHashScript(tweakedHash)
		}
		if err != nil {
			return nil, err
		}

	case MethodScriptHash, MethodWitnessScriptHash, MethodBareScript:
		lockscriptCommitment, err := CommitToLockscript(
			LockscriptContainer{Script: container.Script, Pubkey: container.Pubkey}, msg)
		if err != nil {
			return nil, err
		}
		switch container.Method {
		case MethodScriptHash:
			scriptPubkey, err = txscript.PayToScriptHashScript(
				btcutil.Hash160(lockscriptCommitment.Script))
		case MethodWitnessScriptHash:
			scriptPubkey, err = txscript.PayToWitnessScriptHashScript(
				chainhash.HashB(lockscriptCommitment.Script))
		default:
			scriptPubkey = lockscriptCommitment.Script
		}
		if err != nil {
			return nil, err
		}

	default:
		return nil, errors.Wrapf(ErrUnsupportedScriptPubkey, "method %d", container.Method)
	}

	return &ScriptPubkeyCommitment{Container: container, ScriptPubkey: scriptPubkey}, nil
}

// OriginalContainer returns the container the commitment was produced from.
func (c *ScriptPubkeyCommitment) OriginalContainer() ScriptPubkeyContainer {
	return c.Container
}

// Equal reports whether two commitments carry the same scriptPubkey.
func (c *ScriptPubkeyCommitment) Equal(other *ScriptPubkeyCommitment) bool {
	return other != nil && bytes.Equal(c.ScriptPubkey, other.ScriptPubkey)
}

// RevealVerify re-runs the embedding over the original container and compares
// the resulting scriptPubkeys.
func (c *ScriptPubkeyCommitment) RevealVerify(msg []byte) bool {
	return commitverify.RevealVerify(CommitToScriptPubkey, c, c.OriginalContainer(), msg)
}
