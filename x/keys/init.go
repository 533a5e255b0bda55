package keys

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
)

// Initializer fulfils the Initializer interface to load the registry
// configuration from the genesis file. The initial signer is not created
// here, it is set up by the wallet so that the matching event is logged.
type Initializer struct{}

var _ vault.Initializer = (*Initializer)(nil)

// FromGenesis stores the "conf.keys" section. The section is optional,
// without it DefaultMaxSigners applies.
func (*Initializer) FromGenesis(opts vault.Options, db vault.KVStore) error {
	switch err := gconf.InitConfig(db, opts, "keys", &Configuration{}); {
	case errors.ErrNotFound.Is(err):
		return nil
	case err != nil:
		return errors.Wrap(err, "keys configuration")
	}
	return nil
}
