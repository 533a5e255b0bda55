package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/vault/x/wallet"
)

func cmdPropose(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Propose a new transaction. Anyone can propose. Transaction ID is chosen by
the caller and must not be used before.
`)
		fl.PrintDefaults()
	}
	var (
		common      = flCommon(fl)
		caller      = flCaller(fl)
		txFl        = fl.Uint64("tx", 0, "Transaction ID.")
		recipientFl = flAddress(fl, "recipient", "", "Address of the recipient.")
		amountFl    = fl.Uint64("amount", 0, "Amount to transfer.")
	)
	fl.Parse(args)

	msg := &wallet.ProposeTransactionMsg{
		TxID:      *txFl,
		Recipient: *recipientFl,
		Amount:    *amountFl,
	}
	return deliver(common, caller, msg, output)
}

func cmdSign(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Sign a transaction on behalf of the caller. Caller must be a signer.
`)
		fl.PrintDefaults()
	}
	var (
		common = flCommon(fl)
		caller = flCaller(fl)
		txFl   = fl.Uint64("tx", 0, "Transaction ID.")
	)
	fl.Parse(args)

	return deliver(common, caller, &wallet.SignTransactionMsg{TxID: *txFl}, output)
}

func cmdExecute(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Execute a transaction that collected enough signatures. Anyone can execute.
`)
		fl.PrintDefaults()
	}
	var (
		common = flCommon(fl)
		caller = flCaller(fl)
		txFl   = fl.Uint64("tx", 0, "Transaction ID.")
	)
	fl.Parse(args)

	return deliver(common, caller, &wallet.ExecuteTransactionMsg{TxID: *txFl}, output)
}
