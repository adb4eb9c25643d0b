package keychain

import (
	"encoding/json"
	"fmt"

	"github.com/codehive-india/showcase/foundation/hive"
	"github.com/ethereum/go-ethereum/crypto"
)

// FileKeychain is a development keychain backed by an ECDSA private key file.
// It signs the operation payload and reports success without committing
// anything to the chain, mirroring the simulated server path. The key file
// never leaves the local machine.
type FileKeychain struct {
	path string
}

// NewFileKeychain constructs a keychain for the specified key file.
func NewFileKeychain(path string) *FileKeychain {
	return &FileKeychain{path: path}
}

// RequestBroadcast signs the operations asynchronously and delivers a single
// response with the signature as its result.
func (k *FileKeychain) RequestBroadcast(account string, ops []hive.Operation, authority string, respond func(Response)) {
	go func() {
		privateKey, err := crypto.LoadECDSA(k.path)
		if err != nil {
			respond(Response{Message: fmt.Sprintf("unable to load key: %s", err)})
			return
		}

		payload, err := json.Marshal(ops)
		if err != nil {
			respond(Response{Message: fmt.Sprintf("unable to encode operations: %s", err)})
			return
		}

		sig, err := crypto.Sign(crypto.Keccak256(payload), privateKey)
		if err != nil {
			respond(Response{Message: fmt.Sprintf("unable to sign operations: %s", err)})
			return
		}

		result, err := json.Marshal(struct {
			Account   string `json:"account"`
			Authority string `json:"authority"`
			Signature string `json:"signature"`
		}{
			Account:   account,
			Authority: authority,
			Signature: fmt.Sprintf("%x", sig),
		})
		if err != nil {
			respond(Response{Message: fmt.Sprintf("unable to encode result: %s", err)})
			return
		}

		respond(Response{
			Success: true,
			Message: "operations signed locally, broadcast skipped",
			Result:  result,
		})
	}()
}
