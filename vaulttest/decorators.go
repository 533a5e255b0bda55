package vaulttest

import "github.com/iov-one/vault"

// Decorator is a mock implementation of the vault.Decorator interface.
//
// Set CheckErr or DeliverErr to force error response for corresponding method.
// If error attributes are not set then wrapped handler method is called and
// its result returned.
// Each method call is counted. Regardless of the method call result the
// counter is incremented.
type Decorator struct {
	checkCall int
	// CheckErr if set is returned by the Check method before calling
	// the wrapped handler.
	CheckErr error

	deliverCall int
	// DeliverErr if set is returned by the Deliver method before calling
	// the wrapped handler.
	DeliverErr error
}

var _ vault.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx vault.Context, db vault.KVStore, msg vault.Msg, next vault.Checker) (*vault.CheckResult, error) {
	d.checkCall++

	if d.CheckErr != nil {
		return &vault.CheckResult{}, d.CheckErr
	}
	return next.Check(ctx, db, msg)
}

func (d *Decorator) Deliver(ctx vault.Context, db vault.KVStore, msg vault.Msg, next vault.Deliverer) (*vault.DeliverResult, error) {
	d.deliverCall++

	if d.DeliverErr != nil {
		return &vault.DeliverResult{}, d.DeliverErr
	}
	return next.Deliver(ctx, db, msg)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

func Decorate(h vault.Handler, d vault.Decorator) vault.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn vault.Handler
	dc vault.Decorator
}

var _ vault.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Check(ctx vault.Context, db vault.KVStore, msg vault.Msg) (*vault.CheckResult, error) {
	return d.dc.Check(ctx, db, msg, d.hn)
}

func (d *decoratedHandler) Deliver(ctx vault.Context, db vault.KVStore, msg vault.Msg) (*vault.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, msg, d.hn)
}
