package wallet

import (
	"fmt"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

// Handler processes all wallet calls. The caller is taken from the context.
type Handler struct {
	wallet Wallet
}

var _ vault.Handler = Handler{}

// NewHandler returns a handler using the default wallet.
func NewHandler() Handler {
	return Handler{wallet: NewWallet()}
}

// Check validates the message and tries it against a throwaway cache of
// the store, so that nothing is written.
func (h Handler) Check(ctx vault.Context, db vault.KVStore, msg vault.Msg) (*vault.CheckResult, error) {
	call, err := h.validate(msg)
	if err != nil {
		return nil, err
	}
	if cstore, ok := db.(vault.CacheableKVStore); ok {
		cache := cstore.CacheWrap()
		defer cache.Discard()
		if _, err := h.apply(ctx, cache, call); err != nil {
			return nil, err
		}
	}
	return &vault.CheckResult{Log: call.Path()}, nil
}

// Deliver applies the call. Success of a call is a nil error. The result
// then carries the id of the logged event, both typed and encoded as 8 bytes
// big endian.
func (h Handler) Deliver(ctx vault.Context, db vault.KVStore, msg vault.Msg) (*vault.DeliverResult, error) {
	call, err := h.validate(msg)
	if err != nil {
		return nil, err
	}
	id, err := h.apply(ctx, db, call)
	if err != nil {
		return nil, err
	}
	return &vault.DeliverResult{
		Data:    orm.EncodeSequence(id),
		Log:     fmt.Sprintf("%s: event %d", call.Path(), id),
		EventID: &id,
	}, nil
}

// validate does all common pre-processing between Check and Deliver
func (h Handler) validate(msg vault.Msg) (Call, error) {
	call, ok := msg.(Call)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	if err := call.Validate(); err != nil {
		return nil, errors.Wrap(err, call.Path())
	}
	return call, nil
}

func (h Handler) apply(ctx vault.Context, db vault.KVStore, call Call) (uint64, error) {
	caller, _ := vault.GetCaller(ctx)

	switch c := call.(type) {
	case *InitializeContractMsg:
		return h.wallet.Initialize(db, c.Signer, c.RequiredSignatures)
	case *AddSignerMsg:
		return h.wallet.AddSigner(db, caller, c.NewSigner)
	case *RemoveSignerMsg:
		return h.wallet.RemoveSigner(db, caller, c.Signer)
	case *ChangeRequiredSignaturesMsg:
		return h.wallet.ChangeRequiredSignatures(db, caller, c.NewRequired)
	case *ProposeTransactionMsg:
		return h.wallet.ProposeTransaction(db, c.TxID, c.Recipient, c.Amount)
	case *SignTransactionMsg:
		signer := c.Signer
		if len(signer) == 0 {
			signer = caller
		}
		return h.wallet.SignTransaction(db, c.TxID, signer)
	case *ExecuteTransactionMsg:
		return h.wallet.ExecuteTransaction(db, c.TxID)
	default:
		return 0, errors.WithType(errors.ErrMsg, call)
	}
}
