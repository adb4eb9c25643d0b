package hive

import "encoding/json"

// Operation is a single blockchain operation. On the wire an operation is a
// [name, body] tuple, not an object.
type Operation struct {
	Type string
	Body any
}

// MarshalJSON encodes the operation as the wire tuple.
func (o Operation) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{o.Type, o.Body})
}

// CommentOperation creates a post or comment. A root-level post has an empty
// parent author and uses its first tag as the parent permlink.
type CommentOperation struct {
	ParentAuthor   string `json:"parent_author"`
	ParentPermlink string `json:"parent_permlink"`
	Author         string `json:"author"`
	Permlink       string `json:"permlink"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	JSONMetadata   string `json:"json_metadata"`
}

// Beneficiary routes a share of a post's rewards to another account. Weight
// is in basis points, 10000 meaning 100%.
type Beneficiary struct {
	Account string `json:"account"`
	Weight  int    `json:"weight"`
}

// CommentOptionsOperation configures reward handling for a comment. The
// beneficiary set rides in the extensions list under type 0.
type CommentOptionsOperation struct {
	Author               string      `json:"author"`
	Permlink             string      `json:"permlink"`
	MaxAcceptedPayout    string      `json:"max_accepted_payout"`
	PercentHBD           int         `json:"percent_hbd"`
	AllowVotes           bool        `json:"allow_votes"`
	AllowCurationRewards bool        `json:"allow_curation_rewards"`
	Extensions           []Extension `json:"extensions"`
}

// Extension is a typed extension entry, encoded as a [type, value] tuple.
type Extension struct {
	Type  int
	Value any
}

// MarshalJSON encodes the extension as the wire tuple.
func (e Extension) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.Type, e.Value})
}

// BeneficiarySet is the extension value carrying the beneficiary list.
type BeneficiarySet struct {
	Beneficiaries []Beneficiary `json:"beneficiaries"`
}
