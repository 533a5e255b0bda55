package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/iov-one/vault"
)

// commands is a register of all available commands that can be executed by
// this program. The name is used to match with the first argument given.
//
// A command function is given stdin, stdout and the command line arguments
// without the program and the command name. It is responsible for parsing
// its own flags. Every call command opens the store, applies a single call,
// commits and closes the store again, so commands can be chained in a shell
// script:
//
//   $ vaultcli init -signer $(vaultcli keyaddr)
//   $ vaultcli propose -tx 1 -recipient 0A1B... -amount 100
//   $ vaultcli sign -tx 1
//   $ vaultcli execute -tx 1
//
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"add-signer":    cmdAddSigner,
	"event":         cmdEvent,
	"events":        cmdEvents,
	"execute":       cmdExecute,
	"init":          cmdInit,
	"is-authorized": cmdIsAuthorized,
	"keyaddr":       cmdKeyaddr,
	"keygen":        cmdKeygen,
	"propose":       cmdPropose,
	"remove-signer": cmdRemoveSigner,
	"required":      cmdRequired,
	"set-threshold": cmdSetThreshold,
	"sign":          cmdSign,
	"signers":       cmdSigners,
	"tx":            cmdTx,
	"version":       cmdVersion,
}

func main() {
	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s is a command line client for the multisignature vault.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		fmt.Fprintf(os.Stderr, "Run '%s <command> -help' to learn more about each command.\n", os.Args[0])
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	// Skip two first arguments. Second argument is the command name that
	// we just consumed.
	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func cmdVersion(in io.Reader, out io.Writer, args []string) error {
	_, err := fmt.Fprintln(out, vault.Version())
	return err
}
