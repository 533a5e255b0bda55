package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/app"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store/iavl"
	"github.com/tendermint/tendermint/libs/log"
)

// dbName is the name of the database inside of the home directory.
const dbName = "vault"

// openApp returns an application instance working on the database in the
// home directory. Returned function must be called to release the database.
func openApp(fl commonFlags) (*app.App, func(), error) {
	logger, err := newLogger(os.Stderr, *fl.logLevel)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(*fl.home, 0700); err != nil {
		return nil, nil, fmt.Errorf("cannot create home directory: %s", err)
	}
	db, err := iavl.NewCommitStore(*fl.home, dbName)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open database: %s", err)
	}
	a, err := app.New(db, logger, *fl.debug)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("cannot load application: %s", err)
	}
	return a, db.Close, nil
}

func newLogger(w io.Writer, level string) (log.Logger, error) {
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %s", err)
	}
	logger := log.NewTMLogger(log.NewSyncWriter(w))
	return log.NewFilter(logger, opt), nil
}

// callResult is printed after a successful call.
type callResult struct {
	EventID uint64 `json:"event_id"`
	Version int64  `json:"version"`
}

// deliver applies a single call on behalf of the caller and commits the
// result.
func deliver(fl commonFlags, cl callerFlags, msg vault.Msg, out io.Writer) error {
	caller, err := cl.address()
	if err != nil {
		return err
	}
	a, cleanup, err := openApp(fl)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := a.Deliver(caller, msg)
	if err != nil {
		return callError(msg.Path(), err, *fl.debug)
	}
	id, err := a.Commit()
	if err != nil {
		return err
	}
	return printJSON(out, callResult{EventID: *res.EventID, Version: id.Version})
}

// callError formats a failed call the way it is shown to the user.
func callError(path string, err error, debug bool) error {
	code, info := errors.Info(err, debug)
	return fmt.Errorf("%s: code %d: %s", path, code, info)
}

func printJSON(out io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot serialize result: %s", err)
	}
	_, err = fmt.Fprintln(out, string(raw))
	return err
}
