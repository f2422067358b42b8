package main

import (
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

type blindConfig struct {
	TxID     string  `long:"txid" required:"true" description:"Transaction id to blind, in hex"`
	Vout     uint16  `long:"vout" required:"true" description:"Output index to blind"`
	Blinding *uint32 `long:"blinding" description:"Blinding factor; drawn from a CSPRNG when omitted"`
}

type commitKeyConfig struct {
	PubKey  string `long:"pubkey" required:"true" description:"Public key to tweak, in hex (compressed or uncompressed)"`
	Message string `long:"message" required:"true" description:"Message to commit to"`
}

type verifyKeyConfig struct {
	PubKey  string `long:"pubkey" required:"true" description:"Original public key, in hex"`
	Tweaked string `long:"tweaked" required:"true" description:"Tweaked public key to verify, in hex"`
	Message string `long:"message" required:"true" description:"Revealed message"`
}

type configFlags struct {
	Blind     blindConfig     `command:"blind" description:"Compute the blinded hash of a transaction outpoint"`
	CommitKey commitKeyConfig `command:"commit-key" description:"Commit a message into a public key"`
	VerifyKey verifyKeyConfig `command:"verify-key" description:"Verify a key commitment against a revealed message"`
}

func parseConfig() (*configFlags, string, error) {
	cfg := &configFlags{}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)
	_, err := parser.Parse()
	if err != nil {
		return nil, "", err
	}
	if parser.Active == nil {
		return nil, "", errors.New("no command specified")
	}
	return cfg, parser.Active.Name, nil
}
