package vault

import (
	"encoding/json"

	"github.com/iov-one/vault/errors"
)

// Msg is an action that can be applied to the vault state. The set of
// messages understood by a handler is closed and defined by the extension
// that owns the handler.
type Msg interface {
	// Path returns a short, human readable name of the message, used for
	// logging and for routing results back to the caller.
	Path() string

	// Validate performs stateless checks of the message content.
	Validate() error
}

// Handler is a core engine that can process a few specific messages
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a message.
// It is its own interface to allow better type controls in the next
// arguments in Decorator
type Checker interface {
	Check(ctx Context, store KVStore, msg Msg) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a message.
// It is its own interface to allow better type controls in the next
// arguments in Decorator
type Deliverer interface {
	Deliver(ctx Context, store KVStore, msg Msg) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality
// like logging or atomic commits, to many Handlers
type Decorator interface {
	Check(ctx Context, store KVStore, msg Msg, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, msg Msg, next Deliverer) (*DeliverResult, error)
}

// CheckResult captures any non-error result of checking a message
type CheckResult struct {
	// Log is human-readable informational string
	Log string
}

// DeliverResult captures any non-error result of executing a message
type DeliverResult struct {
	// Data is the encoded success value of the call
	Data []byte
	// Log is human-readable informational string
	Log string
	// EventID is the identifier of the history event appended by the call,
	// if any.
	EventID *uint64
}

// Options are the app options
// Each extension can look up it's key and parse the json as desired
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key,
// and parses the json into the given obj.
// Returns an error if it cannot parse.
// Noop and no error if key is missing
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "%s options: %s", key, err)
	}
	return nil
}

// Initializer implementations are used to initialize
// extensions from genesis file contents
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...Initializer) Initializer {
	return MultiInitializer{inits}
}

// MultiInitializer is used internally by ChainInitializers,
// it applies all initializers in the given order.
type MultiInitializer struct {
	inits []Initializer
}

var _ Initializer = MultiInitializer{}

// FromGenesis runs all initializers in the same order.
func (m MultiInitializer) FromGenesis(opts Options, kv KVStore) error {
	for _, i := range m.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
