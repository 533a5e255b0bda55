package keys

import (
	"github.com/iov-one/vault/errors"
)

// keys takes 1040-1049
var (
	ErrAlreadyInitialized = errors.Register(1040, "registry already initialized")
	ErrInvalidThreshold   = errors.Register(1041, "invalid threshold")
	ErrInvariantViolation = errors.Register(1042, "registry invariant violation")
	ErrAlreadyPresent     = errors.Register(1043, "signer already present")
	ErrNotPresent         = errors.Register(1044, "signer not present")
)
