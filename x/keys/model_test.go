package keys

import (
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/vaulttest"
	"github.com/iov-one/vault/vaulttest/assert"
)

func TestAuthorityValidate(t *testing.T) {
	alice := vaulttest.NewAddress()
	bobby := vaulttest.NewAddress()

	cases := map[string]struct {
		Model    *Authority
		WantErrs map[string]*errors.Error
	}{
		"valid model": {
			Model: &Authority{
				Signers:            [][]byte{alice, bobby},
				RequiredSignatures: 2,
			},
			WantErrs: map[string]*errors.Error{
				"Signers":            nil,
				"RequiredSignatures": nil,
			},
		},
		"empty model": {
			Model: &Authority{},
			WantErrs: map[string]*errors.Error{
				"Signers":            errors.ErrEmpty,
				"RequiredSignatures": ErrInvalidThreshold,
			},
		},
		"threshold above signer count": {
			Model: &Authority{
				Signers:            [][]byte{alice},
				RequiredSignatures: 2,
			},
			WantErrs: map[string]*errors.Error{
				"Signers":            nil,
				"RequiredSignatures": ErrInvalidThreshold,
			},
		},
		"malformed signer": {
			Model: &Authority{
				Signers:            [][]byte{alice, []byte("short")},
				RequiredSignatures: 1,
			},
			WantErrs: map[string]*errors.Error{
				"Signers":            errors.ErrInput,
				"RequiredSignatures": nil,
			},
		},
		"duplicated signer": {
			Model: &Authority{
				Signers:            [][]byte{alice, bobby, alice},
				RequiredSignatures: 1,
			},
			WantErrs: map[string]*errors.Error{
				"Signers":            errors.ErrDuplicate,
				"RequiredSignatures": nil,
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.Model.Validate()
			for field, want := range tc.WantErrs {
				assert.FieldError(t, err, field, want)
			}
		})
	}
}

func TestAuthorityCopy(t *testing.T) {
	a := &Authority{
		Signers:            [][]byte{vaulttest.NewAddress()},
		RequiredSignatures: 1,
	}
	cpy := a.Copy()
	assert.Equal(t, a, cpy)

	cpy.Signers[0][0]++
	cpy.RequiredSignatures = 7
	assert.True(t, !vault.Address(a.Signers[0]).Equals(cpy.Signers[0]))
	assert.Equal(t, uint32(1), a.RequiredSignatures)
}

func TestConfigurationValidate(t *testing.T) {
	assert.FieldError(t, (&Configuration{}).Validate(), "MaxSigners", errors.ErrModel)
	assert.Nil(t, (&Configuration{MaxSigners: 1}).Validate())
}
