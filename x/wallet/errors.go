package wallet

import (
	"github.com/iov-one/vault/errors"
)

// wallet takes 1060-1069
var (
	ErrAlreadyExecuted        = errors.Register(1060, "transaction already executed")
	ErrInsufficientSignatures = errors.Register(1061, "insufficient signatures")
)
