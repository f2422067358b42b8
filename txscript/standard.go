// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/pkg/errors"
)

// ScriptClass is an enumeration for the list of standard types of script.
type ScriptClass byte

// Classes of script payment known about in the blockchain. The set is closed:
// anything that does not match one of the standard templates below classifies
// as NonStandardTy and must be rejected by callers that require a template,
// never passed through.
const (
	NonStandardTy         ScriptClass = iota // None of the recognized forms.
	PubKeyTy                                 // Pay to pubkey.
	PubKeyHashTy                             // Pay to pubkey hash.
	ScriptHashTy                             // Pay to script hash.
	WitnessV0PubKeyHashTy                    // Pay to witness pubkey hash.
	WitnessV0ScriptHashTy                    // Pay to witness script hash.
)

var scriptClassToName = []string{
	NonStandardTy:         "nonstandard",
	PubKeyTy:              "pubkey",
	PubKeyHashTy:          "pubkeyhash",
	ScriptHashTy:          "scripthash",
	WitnessV0PubKeyHashTy: "witness_v0_keyhash",
	WitnessV0ScriptHashTy: "witness_v0_scripthash",
}

// String implements the Stringer interface by returning the name of the enum
// script class. If the enum is invalid then "Invalid" will be returned.
func (t ScriptClass) String() string {
	if int(t) >= len(scriptClassToName) {
		return "Invalid"
	}
	return scriptClassToName[t]
}

// isPubkey returns true if the script passed is a pay-to-pubkey transaction,
// false otherwise.
func isPubkey(pops []parsedOpcode) bool {
	return len(pops) == 2 &&
		(len(pops[0].data) == 33 || len(pops[0].data) == 65) &&
		pops[1].opcode == OP_CHECKSIG
}

// isPubkeyHash returns true if the script passed is a pay-to-pubkey-hash
// transaction, false otherwise.
func isPubkeyHash(pops []parsedOpcode) bool {
	return len(pops) == 5 &&
		pops[0].opcode == OP_DUP &&
		pops[1].opcode == OP_HASH160 &&
		pops[2].opcode == OP_DATA_20 &&
		pops[3].opcode == OP_EQUALVERIFY &&
		pops[4].opcode == OP_CHECKSIG
}

// isScriptHash returns true if the script passed is a pay-to-script-hash
// transaction, false otherwise.
func isScriptHash(pops []parsedOpcode) bool {
	return len(pops) == 3 &&
		pops[0].opcode == OP_HASH160 &&
		pops[1].opcode == OP_DATA_20 &&
		pops[2].opcode == OP_EQUAL
}

// isWitnessPubKeyHash returns true if the passed script is a
// pay-to-witness-pubkey-hash, and false otherwise.
func isWitnessPubKeyHash(pops []parsedOpcode) bool {
	return len(pops) == 2 &&
		pops[0].opcode == OP_0 &&
		pops[1].opcode == OP_DATA_20
}

// isWitnessScriptHash returns true if the passed script is a
// pay-to-witness-script-hash, and false otherwise.
func isWitnessScriptHash(pops []parsedOpcode) bool {
	return len(pops) == 2 &&
		pops[0].opcode == OP_0 &&
		pops[1].opcode == OP_DATA_32
}

// typeOfScript returns the type of the script being inspected from the known
// standard types.
func typeOfScript(pops []parsedOpcode) ScriptClass {
	switch {
	case isPubkey(pops):
		return PubKeyTy
	case isPubkeyHash(pops):
		return PubKeyHashTy
	case isScriptHash(pops):
		return ScriptHashTy
	case isWitnessPubKeyHash(pops):
		return WitnessV0PubKeyHashTy
	case isWitnessScriptHash(pops):
		return WitnessV0ScriptHashTy
	}
	return NonStandardTy
}

// GetScriptClass returns the class of the script passed.
//
// NonStandardTy will be returned when the script does not parse.
func GetScriptClass(script []byte) ScriptClass {
	pops, err := parseScript(script)
	if err != nil {
		return NonStandardTy
	}
	return typeOfScript(pops)
}

// ParseWitnessProgram attempts to interpret the script as a witness program:
// a single small-int version opcode followed by one push of 2 to 40 bytes.
// It returns the witness version and program payload when the form matches.
func ParseWitnessProgram(script []byte) (version int, program []byte, ok bool) {
	pops, err := parseScript(script)
	if err != nil {
		return 0, nil, false
	}
	if len(pops) != 2 || !isSmallInt(pops[0].opcode) {
		return 0, nil, false
	}
	if len(pops[1].data) < 2 || len(pops[1].data) > 40 {
		return 0, nil, false
	}
	if pops[0].opcode == OP_0 {
		version = 0
	} else {
		version = int(pops[0].opcode - OP_1 + 1)
	}
	return version, pops[1].data, true
}

// ExtractPubKey returns the serialized public key of a pay-to-pubkey script.
func ExtractPubKey(script []byte) (*btcec.PublicKey, error) {
	pops, err := parseScript(script)
	if err != nil {
		return nil, err
	}
	if !isPubkey(pops) {
		return nil, errors.Errorf("script is a %s, not a pay-to-pubkey", typeOfScript(pops))
	}
	return btcec.ParsePubKey(pops[0].data)
}

// ExtractHash returns the 20-byte (or, for witness script hash, 32-byte)
// payload of a hash-based standard script.
func ExtractHash(script []byte) ([]byte, error) {
	pops, err := parseScript(script)
	if err != nil {
		return nil, err
	}
	switch typeOfScript(pops) {
	case PubKeyHashTy:
		return pops[2].data, nil
	case ScriptHashTy, WitnessV0PubKeyHashTy, WitnessV0ScriptHashTy:
		return pops[1].data, nil
	}
	return nil, errors.Errorf("script is a %s, not a hash-based template", typeOfScript(pops))
}

// PayToPubKeyScript creates a new script to pay a transaction output to the
// passed serialized public key.
func PayToPubKeyScript(serializedPubKey []byte) ([]byte, error) {
	return NewScriptBuilder().AddData(serializedPubKey).
		AddOp(OP_CHECKSIG).Script()
}

// PayToPubKeyHashScript creates a new script to pay a transaction output to
// the passed 20-byte pubkey hash.
func PayToPubKeyHashScript(pubKeyHash []byte) ([]byte, error) {
	if len(pubKeyHash) != 20 {
		return nil, errors.Errorf("pubkey hash is %d bytes, expected 20", len(pubKeyHash))
	}
	return NewScriptBuilder().AddOp(OP_DUP).AddOp(OP_HASH160).
		AddData(pubKeyHash).AddOp(OP_EQUALVERIFY).AddOp(OP_CHECKSIG).
		Script()
}

// PayToScriptHashScript creates a new script to pay a transaction output to
// the passed 20-byte script hash.
func PayToScriptHashScript(scriptHash []byte) ([]byte, error) {
	if len(scriptHash) != 20 {
		return nil, errors.Errorf("script hash is %d bytes, expected 20", len(scriptHash))
	}
	return NewScriptBuilder().AddOp(OP_HASH160).AddData(scriptHash).
		AddOp(OP_EQUAL).Script()
}

// PayToWitnessPubKeyHashScript creates a new script to pay to a version 0
// witness program holding the passed 20-byte pubkey hash.
func PayToWitnessPubKeyHashScript(pubKeyHash []byte) ([]byte, error) {
	if len(pubKeyHash) != 20 {
		return nil, errors.Errorf("pubkey hash is %d bytes, expected 20", len(pubKeyHash))
	}
	return NewScriptBuilder().AddOp(OP_0).AddData(pubKeyHash).Script()
}

// PayToWitnessScriptHashScript creates a new script to pay to a version 0
// witness program holding the passed 32-byte script hash.
func PayToWitnessScriptHashScript(scriptHash []byte) ([]byte, error) {
	if len(scriptHash) != 32 {
		return nil, errors.Errorf("script hash is %d bytes, expected 32", len(scriptHash))
	}
	return NewScriptBuilder().AddOp(OP_0).AddData(scriptHash).Script()
}
