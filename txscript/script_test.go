// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/pkg/errors"
)

// hexToBytes converts the passed hex string into bytes and will panic if
// there is an error. This is only provided for the hard-coded constants so
// errors in the source code can be detected. It will only (and must only) be
// called with hard-coded values.
func hexToBytes(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("invalid hex in source file: " + s)
	}
	return b
}

// TestParseScript ensures scripts lex into the expected opcode sequences and
// that truncated pushes are rejected.
func TestParseScript(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		script  []byte
		numPops int
		wantErr error
	}{
		{
			name:    "empty script",
			script:  nil,
			numPops: 0,
		},
		{
			name: "p2pkh",
			script: hexToBytes("76a914ad06dd6ddee55cbca9a9e3713bd" +
				"7587509a3056488ac"),
			numPops: 5,
		},
		{
			name:    "direct push",
			script:  append([]byte{0x03}, 1, 2, 3),
			numPops: 1,
		},
		{
			name:    "pushdata1",
			script:  append([]byte{OP_PUSHDATA1, 0x02}, 1, 2),
			numPops: 1,
		},
		{
			name:    "pushdata2",
			script:  append([]byte{OP_PUSHDATA2, 0x02, 0x00}, 1, 2),
			numPops: 1,
		},
		{
			name:    "truncated direct push",
			script:  []byte{0x04, 1, 2},
			wantErr: ErrMalformedPush,
		},
		{
			name:    "pushdata1 missing length",
			script:  []byte{OP_PUSHDATA1},
			wantErr: ErrMalformedPush,
		},
		{
			name:    "pushdata2 truncated length",
			script:  []byte{OP_PUSHDATA2, 0x02},
			wantErr: ErrMalformedPush,
		},
		{
			name:    "pushdata4 truncated payload",
			script:  []byte{OP_PUSHDATA4, 0x05, 0x00, 0x00, 0x00, 1},
			wantErr: ErrMalformedPush,
		},
		{
			name:    "unknown opcodes parse fine",
			script:  []byte{0xba, 0xbb, 0xff},
			numPops: 3,
		},
	}

	for _, test := range tests {
		pops, err := parseScript(test.script)
		if test.wantErr != nil {
			if !errors.Is(err, test.wantErr) {
				t.Errorf("%s: expected error %v, got %v", test.name, test.wantErr, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error %v", test.name, err)
			continue
		}
		if len(pops) != test.numPops {
			t.Errorf("%s: expected %d parsed opcodes, got %d", test.name,
				test.numPops, len(pops))
		}
	}
}

// TestUnparseScriptRoundTrip ensures canonical scripts survive a parse and
// rebuild untouched.
func TestUnparseScriptRoundTrip(t *testing.T) {
	t.Parallel()

	scripts := [][]byte{
		hexToBytes("76a914ad06dd6ddee55cbca9a9e3713bd7587509a3056488ac"),
		hexToBytes("a91463bcc565f9e68ee0189dd5cc67f1b0e5f02f45cb87"),
		hexToBytes("00140102030405060708090a0b0c0d0e0f1011121314"),
		{OP_1, OP_IF, OP_RETURN, OP_ENDIF},
	}

	for _, script := range scripts {
		pops, err := parseScript(script)
		if err != nil {
			t.Fatalf("parseScript(%x): %v", script, err)
		}
		rebuilt, err := unparseScript(pops)
		if err != nil {
			t.Fatalf("unparseScript(%x): %v", script, err)
		}
		if !bytes.Equal(script, rebuilt) {
			t.Errorf("round trip mismatch: %x != %x", script, rebuilt)
		}
	}
}

// TestUnparseScriptCanonicalizes ensures a non-minimal push is rewritten with
// its canonical opcode during rebuild.
func TestUnparseScriptCanonicalizes(t *testing.T) {
	t.Parallel()

	// 3 bytes pushed via OP_PUSHDATA1 must come back as a direct push.
	script := append([]byte{OP_PUSHDATA1, 0x03}, 1, 2, 3)
	pops, err := parseScript(script)
	if err != nil {
		t.Fatalf("parseScript: %v", err)
	}
	rebuilt, err := unparseScript(pops)
	if err != nil {
		t.Fatalf("unparseScript: %v", err)
	}
	want := append([]byte{0x03}, 1, 2, 3)
	if !bytes.Equal(rebuilt, want) {
		t.Errorf("expected canonical push %x, got %x", want, rebuilt)
	}
}
