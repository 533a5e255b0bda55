package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// LoadGenesis reads a genesis file. The file content is a JSON object with a
// section per extension.
func LoadGenesis(filePath string) (vault.Options, error) {
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "loading genesis file")
	}
	return ParseGenesis(raw)
}

// ParseGenesis decodes genesis file content.
func ParseGenesis(raw []byte) (vault.Options, error) {
	var opts vault.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "genesis: %s", err)
	}
	return opts, nil
}
