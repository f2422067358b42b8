// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"github.com/pkg/errors"
)

// ScriptBuilder provides a facility for building custom scripts. It allows
// you to push opcodes and data while respecting canonical (minimal) push
// encoding. Errors are deferred: the first error sticks and is returned by
// Script, so calls can be chained without intermediate checks.
//
//	script, err := txscript.NewScriptBuilder().
//		AddOp(txscript.OP_HASH160).AddData(scriptHash).
//		AddOp(txscript.OP_EQUAL).Script()
type ScriptBuilder struct {
	script []byte
	err    error
}

// NewScriptBuilder returns a new instance of a script builder.
func NewScriptBuilder() *ScriptBuilder {
	return &ScriptBuilder{}
}

// AddOp pushes the passed opcode to the end of the script.
func (b *ScriptBuilder) AddOp(opcode byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	b.script = append(b.script, opcode)
	return b
}

// AddOps pushes the passed opcodes to the end of the script.
func (b *ScriptBuilder) AddOps(opcodes []byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	b.script = append(b.script, opcodes...)
	return b
}

// AddData pushes the passed data to the end of the script using the canonical
// push opcode for its length. Zero-length data and single bytes 1 through 16
// become their small-integer opcodes, so the resulting script is minimal.
func (b *ScriptBuilder) AddData(data []byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}

	if len(data) == 0 {
		b.script = append(b.script, OP_0)
		return b
	}
	if len(data) == 1 && data[0] >= 1 && data[0] <= 16 {
		b.script = append(b.script, OP_1-1+data[0])
		return b
	}
	if len(data) == 1 && data[0] == 0x81 {
		b.script = append(b.script, OP_1NEGATE)
		return b
	}

	b.script, b.err = appendCanonicalPush(b.script, data)
	return b
}

// AddInt64 pushes the passed small integer to the end of the script. Only the
// range representable by the small-integer opcodes is supported here, which
// covers the multisig thresholds this library builds.
func (b *ScriptBuilder) AddInt64(val int64) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	if val == 0 {
		b.script = append(b.script, OP_0)
		return b
	}
	if val < 1 || val > 16 {
		b.err = errors.Errorf("integer %d is outside the small-int opcode range", val)
		return b
	}
	b.script = append(b.script, byte(OP_1-1+val))
	return b
}

// Reset resets the script so it has no content.
func (b *ScriptBuilder) Reset() *ScriptBuilder {
	b.script = b.script[0:0]
	b.err = nil
	return b
}

// Script returns the currently built script together with the first error
// encountered while building, if any.
func (b *ScriptBuilder) Script() ([]byte, error) {
	return b.script, b.err
}
