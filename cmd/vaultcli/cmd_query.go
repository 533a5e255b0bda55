package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/vault/x/wallet"
)

// query answers a single query from the committed state and prints the
// result.
func query(fl commonFlags, q wallet.Query, out io.Writer) error {
	a, cleanup, err := openApp(fl)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := a.Query(q)
	if err != nil {
		return callError(q.Path(), err, *fl.debug)
	}
	return printJSON(out, res)
}

func cmdIsAuthorized(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print true if the given address is a signer of the vault.
`)
		fl.PrintDefaults()
	}
	var (
		common   = flCommon(fl)
		signerFl = flAddress(fl, "signer", "", "Address to check.")
	)
	fl.Parse(args)

	return query(common, wallet.IsAuthorizedQuery{Signer: *signerFl}, output)
}

func cmdRequired(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the number of signatures required to execute a transaction.
`)
		fl.PrintDefaults()
	}
	common := flCommon(fl)
	fl.Parse(args)

	return query(common, wallet.RequiredSignaturesQuery{}, output)
}

func cmdSigners(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print all signers of the vault.
`)
		fl.PrintDefaults()
	}
	common := flCommon(fl)
	fl.Parse(args)

	return query(common, wallet.SignersQuery{}, output)
}

func cmdEvent(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print a single event from the vault history.
`)
		fl.PrintDefaults()
	}
	var (
		common = flCommon(fl)
		idFl   = fl.Uint64("id", 0, "Event ID.")
	)
	fl.Parse(args)

	return query(common, wallet.EventQuery{ID: *idFl}, output)
}

func cmdEvents(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print events from the vault history, oldest first.
`)
		fl.PrintDefaults()
	}
	var (
		common  = flCommon(fl)
		fromFl  = fl.Uint64("from", 0, "ID of the first event.")
		limitFl = fl.Int("limit", 100, "Maximum number of events.")
	)
	fl.Parse(args)

	return query(common, wallet.EventsQuery{From: *fromFl, Limit: *limitFl}, output)
}

func cmdTx(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the state of a proposed transaction.
`)
		fl.PrintDefaults()
	}
	var (
		common = flCommon(fl)
		txFl   = fl.Uint64("tx", 0, "Transaction ID.")
	)
	fl.Parse(args)

	return query(common, wallet.TransactionQuery{TxID: *txFl}, output)
}
