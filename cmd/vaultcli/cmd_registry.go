package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/app"
	"github.com/iov-one/vault/x/wallet"
)

func cmdInit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Initialize a new vault with a single signer.

Either provide a genesis file or the initial signer. A vault can be
initialized only once.
`)
		fl.PrintDefaults()
	}
	var (
		common     = flCommon(fl)
		genesisFl  = fl.String("genesis", "", "Path to the genesis file. Other flags are ignored if provided.")
		signerFl   = flAddress(fl, "signer", "", "Address of the initial signer.")
		requiredFl = fl.Uint("required", 1, "Number of required signatures.")
		maxFl      = fl.Uint("max-signers", 0, "Maximum number of signers. Zero means the default value.")
	)
	fl.Parse(args)

	var opts vault.Options
	if *genesisFl != "" {
		o, err := app.LoadGenesis(*genesisFl)
		if err != nil {
			return err
		}
		opts = o
	} else {
		if len(*signerFl) == 0 {
			return fmt.Errorf("signer or genesis is required")
		}
		o, err := genesisOptions(*signerFl, uint32(*requiredFl), uint32(*maxFl))
		if err != nil {
			return err
		}
		opts = o
	}

	a, cleanup, err := openApp(common)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := a.InitGenesis(opts); err != nil {
		return fmt.Errorf("cannot initialize: %s", err)
	}
	id, err := a.Commit()
	if err != nil {
		return err
	}
	return printJSON(output, struct {
		Version int64         `json:"version"`
		Hash    vault.Address `json:"hash"`
	}{id.Version, id.Hash})
}

// genesisOptions builds the genesis content for a single signer.
func genesisOptions(signer vault.Address, required, maxSigners uint32) (vault.Options, error) {
	keys, err := json.Marshal(struct {
		Signer             vault.Address `json:"signer"`
		RequiredSignatures uint32        `json:"required_signatures"`
	}{signer, required})
	if err != nil {
		return nil, err
	}
	opts := vault.Options{"keys": keys}
	if maxSigners != 0 {
		conf, err := json.Marshal(map[string]interface{}{
			"keys": map[string]uint32{"max_signers": maxSigners},
		})
		if err != nil {
			return nil, err
		}
		opts["conf"] = conf
	}
	return opts, nil
}

func cmdAddSigner(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Add a signer to the vault. Caller must be a signer.
`)
		fl.PrintDefaults()
	}
	var (
		common   = flCommon(fl)
		caller   = flCaller(fl)
		signerFl = flAddress(fl, "signer", "", "Address of the new signer.")
	)
	fl.Parse(args)

	return deliver(common, caller, &wallet.AddSignerMsg{NewSigner: *signerFl}, output)
}

func cmdRemoveSigner(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Remove a signer from the vault. Caller must be a signer.
`)
		fl.PrintDefaults()
	}
	var (
		common   = flCommon(fl)
		caller   = flCaller(fl)
		signerFl = flAddress(fl, "signer", "", "Address of the signer to remove.")
	)
	fl.Parse(args)

	return deliver(common, caller, &wallet.RemoveSignerMsg{Signer: *signerFl}, output)
}

func cmdSetThreshold(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Change the number of signatures required to execute a transaction. Caller
must be a signer.
`)
		fl.PrintDefaults()
	}
	var (
		common     = flCommon(fl)
		caller     = flCaller(fl)
		requiredFl = fl.Uint("required", 1, "Number of required signatures.")
	)
	fl.Parse(args)

	return deliver(common, caller, &wallet.ChangeRequiredSignaturesMsg{NewRequired: uint32(*requiredFl)}, output)
}
