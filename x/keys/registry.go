package keys

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
)

// Registry implements the signer registry operations on top of the
// authority bucket. It holds no state, everything is read from and
// written to the store passed to each call.
type Registry struct {
	bucket AuthorityBucket
}

// NewRegistry returns a registry using the default bucket.
func NewRegistry() Registry {
	return Registry{bucket: NewAuthorityBucket()}
}

// Initialize creates the authority record with a single signer. It can be
// called only once.
func (r Registry) Initialize(db vault.KVStore, signer vault.Address, required uint32) error {
	current, err := r.bucket.GetAuthority(db)
	if err != nil {
		return err
	}
	if current != nil {
		return errors.Wrap(ErrAlreadyInitialized, "initialize")
	}
	if err := signer.Validate(); err != nil {
		return errors.Wrap(err, "signer")
	}
	if required != 1 {
		return errors.Wrapf(ErrInvalidThreshold, "initial threshold must be 1, got %d", required)
	}
	next := &Authority{
		Signers:            [][]byte{signer.Clone()},
		RequiredSignatures: required,
	}
	return r.bucket.SaveAuthority(db, next)
}

// AddSigner appends newSigner to the signer set. The threshold is not
// changed.
func (r Registry) AddSigner(db vault.KVStore, caller, newSigner vault.Address) error {
	current, err := r.authorize(db, caller)
	if err != nil {
		return err
	}
	if err := newSigner.Validate(); err != nil {
		return errors.Wrap(err, "new signer")
	}
	if current.Has(newSigner) {
		return errors.Wrapf(ErrAlreadyPresent, "signer %s", newSigner)
	}
	max, err := r.MaxSigners(db)
	if err != nil {
		return err
	}
	if len(current.Signers)+1 > int(max) {
		return errors.Wrapf(ErrInvariantViolation, "signer set limited to %d members", max)
	}

	next := current.Copy()
	next.Signers = append(next.Signers, newSigner.Clone())
	return r.bucket.SaveAuthority(db, next)
}

// RemoveSigner removes signer from the signer set. Removal is rejected if
// the remaining signers could not satisfy the threshold.
func (r Registry) RemoveSigner(db vault.KVStore, caller, signer vault.Address) error {
	current, err := r.authorize(db, caller)
	if err != nil {
		return err
	}
	idx := current.indexOf(signer)
	if idx < 0 {
		return errors.Wrapf(ErrNotPresent, "signer %s", signer)
	}
	if remaining := len(current.Signers) - 1; int(current.RequiredSignatures) > remaining {
		return errors.Wrapf(ErrInvariantViolation,
			"%d signatures required, %d signers would remain", current.RequiredSignatures, remaining)
	}

	next := current.Copy()
	next.Signers = append(next.Signers[:idx], next.Signers[idx+1:]...)
	return r.bucket.SaveAuthority(db, next)
}

// ChangeRequiredSignatures sets the threshold to n.
func (r Registry) ChangeRequiredSignatures(db vault.KVStore, caller vault.Address, n uint32) error {
	current, err := r.authorize(db, caller)
	if err != nil {
		return err
	}
	if n < 1 || int(n) > len(current.Signers) {
		return errors.Wrapf(ErrInvalidThreshold, "%d of %d", n, len(current.Signers))
	}

	next := current.Copy()
	next.RequiredSignatures = n
	return r.bucket.SaveAuthority(db, next)
}

// IsAuthorized returns true if signer is a member of the signer set. An
// uninitialized registry has no members.
func (r Registry) IsAuthorized(db vault.ReadOnlyKVStore, signer vault.Address) (bool, error) {
	current, err := r.bucket.GetAuthority(db)
	if err != nil || current == nil {
		return false, err
	}
	return current.Has(signer), nil
}

// RequiredSignatures returns the current threshold, or zero if the
// registry was not initialized.
func (r Registry) RequiredSignatures(db vault.ReadOnlyKVStore) (uint32, error) {
	current, err := r.bucket.GetAuthority(db)
	if err != nil || current == nil {
		return 0, err
	}
	return current.RequiredSignatures, nil
}

// Signers returns all signers in the order they were added.
func (r Registry) Signers(db vault.ReadOnlyKVStore) ([]vault.Address, error) {
	current, err := r.bucket.GetAuthority(db)
	if err != nil || current == nil {
		return nil, err
	}
	return current.Addresses(), nil
}

// MaxSigners returns the configured limit of the signer set size.
func (r Registry) MaxSigners(db vault.ReadOnlyKVStore) (uint32, error) {
	var conf Configuration
	switch err := gconf.Load(db, "keys", &conf); {
	case errors.ErrNotFound.Is(err):
		return DefaultMaxSigners, nil
	case err != nil:
		return 0, errors.Wrap(err, "configuration")
	}
	return conf.MaxSigners, nil
}

// authorize loads the authority record and ensures caller is one of its
// signers.
func (r Registry) authorize(db vault.ReadOnlyKVStore, caller vault.Address) (*Authority, error) {
	current, err := r.bucket.GetAuthority(db)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "registry not initialized")
	}
	if len(caller) == 0 || !current.Has(caller) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "caller %s is not a signer", caller)
	}
	return current, nil
}
