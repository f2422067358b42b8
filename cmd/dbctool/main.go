// dbctool exposes the library's commitment primitives for scripting and
// debugging: blinding outpoints and committing to / verifying against public
// keys, all over hex-encoded inputs.
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/pkg/errors"

	"github.com/diop/go-lnpbp/blind"
	"github.com/diop/go-lnpbp/dbc"
)

func main() {
	cfg, command, err := parseConfig()
	if err != nil {
		os.Exit(1)
	}

	switch command {
	case "blind":
		err = runBlind(&cfg.Blind)
	case "commit-key":
		err = runCommitKey(&cfg.CommitKey)
	case "verify-key":
		err = runVerifyKey(&cfg.VerifyKey)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "dbctool: %s\n", err)
		os.Exit(1)
	}
}

func runBlind(cfg *blindConfig) error {
	txID, err := chainhash.NewHashFromStr(cfg.TxID)
	if err != nil {
		return errors.Wrap(err, "invalid txid")
	}

	var reveal *blind.OutpointReveal
	if cfg.Blinding != nil {
		reveal = &blind.OutpointReveal{Blinding: *cfg.Blinding, TxID: *txID, Vout: cfg.Vout}
	} else {
		reveal, err = blind.NewOutpointReveal(*txID, cfg.Vout)
		if err != nil {
			return err
		}
	}

	fmt.Printf("blinding: %d\noutpoint hash: %s\n", reveal.Blinding, reveal.OutpointHash())
	return nil
}

func runCommitKey(cfg *commitKeyConfig) error {
	pubKey, err := parsePubKey(cfg.PubKey)
	if err != nil {
		return err
	}

	commitment, err := dbc.CommitToPubkey(pubKey, []byte(cfg.Message))
	if err != nil {
		return err
	}

	fmt.Printf("tweaked key: %x\n", commitment.Tweaked.SerializeCompressed())
	return nil
}

func runVerifyKey(cfg *verifyKeyConfig) error {
	pubKey, err := parsePubKey(cfg.PubKey)
	if err != nil {
		return err
	}
	tweaked, err := parsePubKey(cfg.Tweaked)
	if err != nil {
		return err
	}

	commitment := &dbc.PubkeyCommitment{Original: pubKey, Tweaked: tweaked}
	if !commitment.RevealVerify([]byte(cfg.Message)) {
		fmt.Println("verification failed")
		os.Exit(2)
	}
	fmt.Println("verification succeeded")
	return nil
}

func parsePubKey(encoded string) (*btcec.PublicKey, error) {
	serialized, err := hex.DecodeString(encoded)
	if err != nil {
		return nil, errors.Wrap(err, "invalid public key hex")
	}
	pubKey, err := btcec.ParsePubKey(serialized)
	return pubKey, errors.Wrap(err, "invalid public key")
}
