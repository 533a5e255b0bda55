package vaulttest

import "github.com/iov-one/vault"

// Handler is a mock implementation of the vault.Handler interface.
//
// Each method call is counted. Configured result and error are returned.
type Handler struct {
	checkCall   int
	CheckResult vault.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult vault.DeliverResult
	DeliverErr    error
}

var _ vault.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx vault.Context, db vault.KVStore, msg vault.Msg) (*vault.CheckResult, error) {
	h.checkCall++
	res := h.CheckResult
	return &res, h.CheckErr
}

func (h *Handler) Deliver(ctx vault.Context, db vault.KVStore, msg vault.Msg) (*vault.DeliverResult, error) {
	h.deliverCall++
	res := h.DeliverResult
	return &res, h.DeliverErr
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// WriteHandler writes a single key value pair to the store and returns the
// configured error. Use it to test that decorators discard or keep changes.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ vault.Handler = WriteHandler{}

func (h WriteHandler) Check(ctx vault.Context, db vault.KVStore, msg vault.Msg) (*vault.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	return &vault.CheckResult{}, h.Err
}

func (h WriteHandler) Deliver(ctx vault.Context, db vault.KVStore, msg vault.Msg) (*vault.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	return &vault.DeliverResult{}, h.Err
}

// PanicHandler panics with the configured value on every call.
type PanicHandler struct {
	Value interface{}
}

var _ vault.Handler = PanicHandler{}

func (h PanicHandler) Check(vault.Context, vault.KVStore, vault.Msg) (*vault.CheckResult, error) {
	panic(h.Value)
}

func (h PanicHandler) Deliver(vault.Context, vault.KVStore, vault.Msg) (*vault.DeliverResult, error) {
	panic(h.Value)
}

// Msg is a message that carries no data. Set Err to fail validation.
type Msg struct {
	RoutePath string
	Err       error
}

var _ vault.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	if m.RoutePath == "" {
		return "test/mock"
	}
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
