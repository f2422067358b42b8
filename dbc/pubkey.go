package dbc

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/pkg/errors"

	"github.com/diop/go-lnpbp/commitverify"
)

// TagPubkeyTweak is the domain-separation tag of the hash the tweak scalar is
// derived from. Commitments made under a different tag never collide with
// commitments made under this one.
var TagPubkeyTweak = []byte("LNPBP1")

// PubkeyCommitment is a public key deterministically tweaked to commit to a
// message: Tweaked = Original + t*G where t is derived from the original key
// and the message. The container of this scheme is the original key alone.
type PubkeyCommitment struct {
	Original *btcec.PublicKey
	Tweaked  *btcec.PublicKey
}

// CommitToPubkey commits to msg by tweaking pubKey. The tweak scalar is the
// tagged hash of the compressed original key followed by the message. No
// modular reduction or retry is performed: a digest at or above the curve
// order, a zero scalar, or a tweaked point at infinity all fail hard with
// ErrInvalidTweak so that the procedure stays a pure function of its inputs.
func CommitToPubkey(pubKey *btcec.PublicKey, msg []byte) (*PubkeyCommitment, error) {
	tweakHash := chainhash.TaggedHash(TagPubkeyTweak, pubKey.SerializeCompressed(), msg)

	var tweak btcec.ModNScalar
	if overflow := tweak.SetBytes((*[32]byte)(tweakHash)); overflow != 0 {
		return nil, errors.Wrap(ErrInvalidTweak, "tweak scalar exceeds curve order")
	}
	if tweak.IsZero() {
		return nil, errors.Wrap(ErrInvalidTweak, "tweak scalar is zero")
	}

	// Tweaked = Original + tweak*G, computed in jacobian coordinates.
	var originalPoint, tweakPoint, tweakedPoint btcec.JacobianPoint
	pubKey.AsJacobian(&originalPoint)
	btcec.ScalarBaseMultNonConst(&tweak, &tweakPoint)
	btcec.AddNonConst(&originalPoint, &tweakPoint, &tweakedPoint)

	tweakedPoint.ToAffine()
	if tweakedPoint.X.IsZero() && tweakedPoint.Y.IsZero() {
		return nil, errors.Wrap(ErrInvalidTweak, "tweaked key is the point at infinity")
	}

	return &PubkeyCommitment{
		Original: pubKey,
		Tweaked:  btcec.NewPublicKey(&tweakedPoint.X, &tweakedPoint.Y),
	}, nil
}

// OriginalContainer returns the container the commitment was produced from.
func (c *PubkeyCommitment) OriginalContainer() *btcec.PublicKey {
	return c.Original
}

// Equal reports whether two commitments carry the same tweaked key.
func (c *PubkeyCommitment) Equal(other *PubkeyCommitment) bool {
	return other != nil && c.Tweaked.IsEqual(other.Tweaked)
}

// RevealVerify recomputes the commitment from the original key and msg and
// compares the tweaked keys.
func (c *PubkeyCommitment) RevealVerify(msg []byte) bool {
	return commitverify.RevealVerify(CommitToPubkey, c, c.OriginalContainer(), msg)
}
