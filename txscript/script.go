// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// ErrMalformedPush is returned when a script ends in the middle of a data
// push or a push-data length prefix.
var ErrMalformedPush = errors.New("script ends mid data push")

// parsedOpcode represents one opcode of a parsed script together with its
// inline push data, if any. The flat opcode sequence is the abstract syntax
// this library traverses: data pushes are the leaves carrying key and hash
// literals, everything else is structure that is preserved untouched.
type parsedOpcode struct {
	opcode byte
	data   []byte
}

// isDataPush returns whether the opcode carries inline data.
func (pop parsedOpcode) isDataPush() bool {
	return pop.opcode <= OP_PUSHDATA4 && pop.opcode != OP_0
}

// parseScript lexes the script into its opcode sequence. It fails only on a
// structurally truncated script; unknown opcodes parse fine since they carry
// no operand.
func parseScript(script []byte) ([]parsedOpcode, error) {
	pops := make([]parsedOpcode, 0, len(script))
	for i := 0; i < len(script); {
		op := script[i]
		i++

		var dataLen int
		switch {
		case op >= OP_DATA_1 && op <= OP_DATA_75:
			dataLen = int(op)
		case op == OP_PUSHDATA1:
			if len(script)-i < 1 {
				return nil, errors.Wrapf(ErrMalformedPush, "OP_PUSHDATA1 at offset %d", i-1)
			}
			dataLen = int(script[i])
			i++
		case op == OP_PUSHDATA2:
			if len(script)-i < 2 {
				return nil, errors.Wrapf(ErrMalformedPush, "OP_PUSHDATA2 at offset %d", i-1)
			}
			dataLen = int(binary.LittleEndian.Uint16(script[i:]))
			i += 2
		case op == OP_PUSHDATA4:
			if len(script)-i < 4 {
				return nil, errors.Wrapf(ErrMalformedPush, "OP_PUSHDATA4 at offset %d", i-1)
			}
			dataLen = int(binary.LittleEndian.Uint32(script[i:]))
			i += 4
		default:
			pops = append(pops, parsedOpcode{opcode: op})
			continue
		}

		if len(script)-i < dataLen {
			return nil, errors.Wrapf(ErrMalformedPush,
				"opcode %#02x pushes %d bytes, %d remain", op, dataLen, len(script)-i)
		}
		pops = append(pops, parsedOpcode{opcode: op, data: script[i : i+dataLen]})
		i += dataLen
	}
	return pops, nil
}

// unparseScript reassembles a script from its opcode sequence. Data pushes
// are re-encoded with the canonical (shortest) push opcode for their length,
// so a script whose push data was substituted stays valid regardless of any
// change in data size.
func unparseScript(pops []parsedOpcode) ([]byte, error) {
	script := make([]byte, 0, len(pops))
	for _, pop := range pops {
		if !pop.isDataPush() {
			script = append(script, pop.opcode)
			continue
		}
		var err error
		script, err = appendCanonicalPush(script, pop.data)
		if err != nil {
			return nil, err
		}
	}
	return script, nil
}

// appendCanonicalPush appends the canonical push encoding of data to script.
func appendCanonicalPush(script, data []byte) ([]byte, error) {
	dataLen := len(data)
	switch {
	case dataLen == 0:
		return append(script, OP_0), nil
	case dataLen <= OP_DATA_75:
		script = append(script, byte(dataLen))
	case dataLen <= 0xff:
		script = append(script, OP_PUSHDATA1, byte(dataLen))
	case dataLen <= 0xffff:
		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], uint16(dataLen))
		script = append(script, OP_PUSHDATA2)
		script = append(script, buf[:]...)
	default:
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], uint32(dataLen))
		script = append(script, OP_PUSHDATA4)
		script = append(script, buf[:]...)
	}
	return append(script, data...), nil
}
