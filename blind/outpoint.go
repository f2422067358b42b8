// Package blind implements outpoint blinding: publishing an opaque keyed hash
// of a transaction outpoint in place of the outpoint itself, so that the set
// of known txids cannot be enumerated against it. Reveal is out-of-band
// disclosure of the pre-image; verification is recomputing the hash.
package blind

import (
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/pkg/errors"

	"github.com/diop/go-lnpbp/commitverify"
	"github.com/diop/go-lnpbp/strictencoding"
	"github.com/diop/go-lnpbp/util/random"
)

// OutpointReveal is the pre-image of a blinded outpoint: the outpoint being
// hidden plus the blinding factor that defeats brute-force enumeration of the
// known-txid set. The blinding factor must come from a cryptographic
// entropy source; use NewOutpointReveal unless replaying a revealed one.
type OutpointReveal struct {
	Blinding uint32
	TxID     chainhash.Hash
	Vout     uint16
}

// OutpointHash is the blinded form of a transaction outpoint, a double
// SHA-256 over the reveal pre-image.
type OutpointHash chainhash.Hash

// NewOutpointReveal builds a reveal for the given outpoint with a fresh
// random blinding factor.
func NewOutpointReveal(txID chainhash.Hash, vout uint16) (*OutpointReveal, error) {
	blinding, err := random.Uint32()
	if err != nil {
		return nil, errors.Wrap(err, "cannot draw blinding factor")
	}
	return &OutpointReveal{
		Blinding: blinding,
		TxID:     txID,
		Vout:     vout,
	}, nil
}

// OutpointHash computes the blinded outpoint: the double SHA-256 of the
// big-endian blinding factor, the raw txid bytes and the big-endian output
// index, in that order.
func (r *OutpointReveal) OutpointHash() OutpointHash {
	preimage := make([]byte, 0, 4+chainhash.HashSize+2)
	preimage = binary.BigEndian.AppendUint32(preimage, r.Blinding)
	preimage = append(preimage, r.TxID[:]...)
	preimage = binary.BigEndian.AppendUint16(preimage, r.Vout)
	return OutpointHash(chainhash.DoubleHashH(preimage))
}

// Equal reports whether two blinded outpoints are the same.
func (h OutpointHash) Equal(other OutpointHash) bool {
	return h == other
}

// String returns the hash in hex.
func (h OutpointHash) String() string {
	return hex.EncodeToString(h[:])
}

// RevealVerify reports whether the hash is the blinded form of the given
// reveal. This is the standalone commitment shape: recompute and compare.
func (h OutpointHash) RevealVerify(reveal *OutpointReveal) bool {
	return commitverify.StandaloneRevealVerify((*OutpointReveal).OutpointHash, h, reveal)
}

// StrictEncode implements strictencoding.Encoder.
func (r *OutpointReveal) StrictEncode(w io.Writer) error {
	if err := strictencoding.PutUint32(w, r.Blinding); err != nil {
		return err
	}
	if _, err := w.Write(r.TxID[:]); err != nil {
		return errors.WithStack(err)
	}
	return strictencoding.PutUint16(w, r.Vout)
}

// StrictDecode implements strictencoding.Decoder.
func (r *OutpointReveal) StrictDecode(reader io.Reader) error {
	var err error
	if r.Blinding, err = strictencoding.Uint32(reader); err != nil {
		return err
	}
	if _, err := io.ReadFull(reader, r.TxID[:]); err != nil {
		return errors.WithStack(err)
	}
	r.Vout, err = strictencoding.Uint16(reader)
	return err
}

// StrictEncode implements strictencoding.Encoder.
func (h *OutpointHash) StrictEncode(w io.Writer) error {
	_, err := w.Write(h[:])
	return errors.WithStack(err)
}

// StrictDecode implements strictencoding.Decoder.
func (h *OutpointHash) StrictDecode(r io.Reader) error {
	_, err := io.ReadFull(r, h[:])
	return errors.WithStack(err)
}
