// Package keychain defines the signing capability contract. Key material is
// owned by the keychain implementation, never by the application; the
// application only hands over operations and receives a completion callback.
package keychain

import (
	"encoding/json"

	"github.com/codehive-india/showcase/foundation/hive"
)

// AuthorityPosting is the authority level required to publish content.
const AuthorityPosting = "posting"

// Response is the payload delivered to the completion callback. Exactly one
// response is delivered per request.
type Response struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result,omitempty"`
}

// Keychain is a host-provided signing capability. RequestBroadcast signs and
// submits the operations out of process and invokes respond exactly once.
type Keychain interface {
	RequestBroadcast(account string, ops []hive.Operation, authority string, respond func(Response))
}
