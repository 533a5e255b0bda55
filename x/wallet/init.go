package wallet

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Initializer fulfils the Initializer interface to set up the initial
// signer from the genesis file.
type Initializer struct{}

var _ vault.Initializer = (*Initializer)(nil)

// FromGenesis reads the "keys" section and initializes the registry through
// the wallet, so that the initial signer is logged like any other key
// addition. A missing section leaves the vault uninitialized.
func (*Initializer) FromGenesis(opts vault.Options, db vault.KVStore) error {
	var genesis struct {
		Signer             vault.Address `json:"signer"`
		RequiredSignatures uint32        `json:"required_signatures"`
	}
	if err := opts.ReadOptions("keys", &genesis); err != nil {
		return err
	}
	if genesis.Signer == nil {
		return nil
	}
	if _, err := NewWallet().Initialize(db, genesis.Signer, genesis.RequiredSignatures); err != nil {
		return errors.Wrap(err, "cannot initialize registry")
	}
	return nil
}
