package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/crypto"
)

// flAddress returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flAddress(fl *flag.FlagSet, name, defaultVal, usage string) *vault.Address {
	var a vault.Address
	if defaultVal != "" {
		var err error
		a, err = vault.ParseAddress(defaultVal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q vault.Address flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var((*flagaddr)(&a), name, usage)
	return &a
}

type flagaddr vault.Address

func (a flagaddr) String() string {
	if len(a) == 0 {
		return ""
	}
	return vault.Address(a).String()
}

func (a *flagaddr) Set(raw string) error {
	val, err := vault.ParseAddress(raw)
	if err != nil {
		return err
	}
	*a = flagaddr(val)
	return nil
}

// keyFile is the private key location relative to the user home directory.
const keyFile = ".vault.priv.key"

// envOr returns the value of the environment variable name. An empty value
// counts as set.
func envOr(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

// homePath is envOr with a fallback inside of the user home directory.
func homePath(name, rel string) string {
	return envOr(name, filepath.Join(os.Getenv("HOME"), rel))
}

// commonFlags are accepted by every command that is using the database.
type commonFlags struct {
	home     *string
	logLevel *string
	debug    *bool
}

func flCommon(fl *flag.FlagSet) commonFlags {
	return commonFlags{
		home: fl.String("home", homePath("VAULT_HOME", ".vault"),
			"Directory of the vault database. You can use VAULT_HOME environment variable to set it."),
		logLevel: fl.String("log", envOr("VAULT_LOG", "error"),
			"Log level, one of debug, info, error or none."),
		debug: fl.Bool("debug", false,
			"Do not redact internal errors."),
	}
}

// callerFlags describe who is issuing a call. An explicit address takes
// precedence over the private key file.
type callerFlags struct {
	as      *vault.Address
	keyPath *string
}

func flCaller(fl *flag.FlagSet) callerFlags {
	return callerFlags{
		as: flAddress(fl, "as", "",
			"Address of the caller. If not set, the address of the private key is used."),
		keyPath: fl.String("key", homePath("VAULT_PRIV_KEY", keyFile),
			"Path to the private key file of the caller. You can use VAULT_PRIV_KEY environment variable to set it."),
	}
}

// address returns the caller address.
func (c callerFlags) address() (vault.Address, error) {
	if len(*c.as) != 0 {
		return *c.as, nil
	}
	key, err := readKey(*c.keyPath)
	if err != nil {
		return nil, err
	}
	return key.PublicKey().Address(), nil
}

func readKey(path string) (*crypto.PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read private key file: %s", err)
	}
	key, err := crypto.UnmarshalPrivateKey(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid private key file: %s", err)
	}
	return key, nil
}
