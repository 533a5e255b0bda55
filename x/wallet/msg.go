package wallet

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

const (
	pathInitialize               = "wallet/initialize"
	pathAddSigner                = "wallet/add_signer"
	pathRemoveSigner             = "wallet/remove_signer"
	pathChangeRequiredSignatures = "wallet/change_required_signatures"
	pathProposeTransaction       = "wallet/propose"
	pathSignTransaction          = "wallet/sign"
	pathExecuteTransaction       = "wallet/execute"
)

// Call is the closed set of messages that mutate the vault state. Only
// messages declared in this package implement it.
type Call interface {
	vault.Msg
	isCall()
}

var (
	_ Call = (*InitializeContractMsg)(nil)
	_ Call = (*AddSignerMsg)(nil)
	_ Call = (*RemoveSignerMsg)(nil)
	_ Call = (*ChangeRequiredSignaturesMsg)(nil)
	_ Call = (*ProposeTransactionMsg)(nil)
	_ Call = (*SignTransactionMsg)(nil)
	_ Call = (*ExecuteTransactionMsg)(nil)
)

// InitializeContractMsg sets up the registry with a single signer.
type InitializeContractMsg struct {
	Signer             vault.Address `json:"signer"`
	RequiredSignatures uint32        `json:"required_signatures"`
}

func (InitializeContractMsg) isCall()      {}
func (InitializeContractMsg) Path() string { return pathInitialize }

func (m *InitializeContractMsg) Validate() error {
	return errors.Field("Signer", m.Signer.Validate(), "invalid signer")
}

// AddSignerMsg adds a signer to the registry.
type AddSignerMsg struct {
	NewSigner vault.Address `json:"new_signer"`
}

func (AddSignerMsg) isCall()      {}
func (AddSignerMsg) Path() string { return pathAddSigner }

func (m *AddSignerMsg) Validate() error {
	return errors.Field("NewSigner", m.NewSigner.Validate(), "invalid signer")
}

// RemoveSignerMsg removes a signer from the registry.
type RemoveSignerMsg struct {
	Signer vault.Address `json:"signer"`
}

func (RemoveSignerMsg) isCall()      {}
func (RemoveSignerMsg) Path() string { return pathRemoveSigner }

func (m *RemoveSignerMsg) Validate() error {
	return errors.Field("Signer", m.Signer.Validate(), "invalid signer")
}

// ChangeRequiredSignaturesMsg sets a new threshold. The range of the
// threshold depends on the signer set and is checked by the registry.
type ChangeRequiredSignaturesMsg struct {
	NewRequired uint32 `json:"new_required"`
}

func (ChangeRequiredSignaturesMsg) isCall()      {}
func (ChangeRequiredSignaturesMsg) Path() string { return pathChangeRequiredSignatures }
func (*ChangeRequiredSignaturesMsg) Validate() error {
	return nil
}

// ProposeTransactionMsg records the intent to transfer Amount to
// Recipient. TxID is assigned by the runtime and must be unique.
type ProposeTransactionMsg struct {
	TxID      uint64        `json:"tx_id"`
	Recipient vault.Address `json:"recipient"`
	Amount    uint64        `json:"amount"`
}

func (ProposeTransactionMsg) isCall()      {}
func (ProposeTransactionMsg) Path() string { return pathProposeTransaction }

func (m *ProposeTransactionMsg) Validate() error {
	return errors.Field("Recipient", m.Recipient.Validate(), "invalid recipient")
}

// SignTransactionMsg approves a transaction on behalf of Signer. An empty Signer
// means the caller.
type SignTransactionMsg struct {
	TxID   uint64        `json:"tx_id"`
	Signer vault.Address `json:"signer,omitempty"`
}

func (SignTransactionMsg) isCall()      {}
func (SignTransactionMsg) Path() string { return pathSignTransaction }

func (m *SignTransactionMsg) Validate() error {
	if len(m.Signer) == 0 {
		return nil
	}
	return errors.Field("Signer", m.Signer.Validate(), "invalid signer")
}

// ExecuteTransactionMsg executes a transaction that collected enough
// signatures.
type ExecuteTransactionMsg struct {
	TxID uint64 `json:"tx_id"`
}

func (ExecuteTransactionMsg) isCall()      {}
func (ExecuteTransactionMsg) Path() string { return pathExecuteTransaction }
func (*ExecuteTransactionMsg) Validate() error {
	return nil
}
