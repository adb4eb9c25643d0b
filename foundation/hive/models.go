package hive

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Account represents the condenser view of a Hive account. Only the fields
// the showcase reads are modeled; the raw record carries far more.
type Account struct {
	ID                     int         `json:"id"`
	Name                   string      `json:"name"`
	Balance                string      `json:"balance"`
	HBDBalance             string      `json:"hbd_balance"`
	SavingsBalance         string      `json:"savings_balance"`
	SavingsHBDBalance      string      `json:"savings_hbd_balance"`
	VestingShares          string      `json:"vesting_shares"`
	DelegatedVestingShares string      `json:"delegated_vesting_shares"`
	ReceivedVestingShares  string      `json:"received_vesting_shares"`
	Reputation             json.Number `json:"reputation"`
	PostCount              int         `json:"post_count"`
	Created                string      `json:"created"`
	JSONMetadata           string      `json:"json_metadata"`
}

// Discussion represents a post or comment as returned by the condenser API.
type Discussion struct {
	ID                 int    `json:"id"`
	Author             string `json:"author"`
	Permlink           string `json:"permlink"`
	Category           string `json:"category"`
	Title              string `json:"title"`
	Body               string `json:"body"`
	JSONMetadata       string `json:"json_metadata"`
	Created            string `json:"created"`
	NetVotes           int    `json:"net_votes"`
	Children           int    `json:"children"`
	PendingPayoutValue string `json:"pending_payout_value"`
}

// HistoryEntry is one element of an account history response. The wire shape
// is a tuple: [index, {trx_id, block, op: [type, data], ...}].
type HistoryEntry struct {
	Index     uint64
	TrxID     string
	Block     uint64
	OpType    string
	Op        json.RawMessage
	Timestamp string
}

type historyRecord struct {
	TrxID     string          `json:"trx_id"`
	Block     uint64          `json:"block"`
	Op        json.RawMessage `json:"op"`
	Timestamp string          `json:"timestamp"`
}

// UnmarshalJSON decodes the [index, record] tuple the node emits.
func (e *HistoryEntry) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("history entry: %w", err)
	}
	if len(tuple) != 2 {
		return fmt.Errorf("history entry: expected 2 elements, got %d", len(tuple))
	}

	if err := json.Unmarshal(tuple[0], &e.Index); err != nil {
		return fmt.Errorf("history index: %w", err)
	}

	var rec historyRecord
	if err := json.Unmarshal(tuple[1], &rec); err != nil {
		return fmt.Errorf("history record: %w", err)
	}
	e.TrxID = rec.TrxID
	e.Block = rec.Block
	e.Timestamp = rec.Timestamp

	// The operation itself is another [type, data] tuple.
	var op []json.RawMessage
	if err := json.Unmarshal(rec.Op, &op); err != nil {
		return fmt.Errorf("history op: %w", err)
	}
	if len(op) == 2 {
		if err := json.Unmarshal(op[0], &e.OpType); err != nil {
			return fmt.Errorf("history op type: %w", err)
		}
		e.Op = op[1]
	}

	return nil
}

// MarshalJSON restores the wire tuple so proxied responses keep the
// upstream shape.
func (e HistoryEntry) MarshalJSON() ([]byte, error) {
	op := []any{e.OpType, e.Op}
	rec := struct {
		TrxID     string `json:"trx_id"`
		Block     uint64 `json:"block"`
		Op        []any  `json:"op"`
		Timestamp string `json:"timestamp"`
	}{
		TrxID:     e.TrxID,
		Block:     e.Block,
		Op:        op,
		Timestamp: e.Timestamp,
	}

	return json.Marshal([]any{e.Index, rec})
}

// =============================================================================

// Asset is a parsed amount/symbol pair such as "1.234 HIVE".
type Asset struct {
	Amount float64
	Symbol string
}

// ParseAsset splits a condenser asset string into amount and symbol.
func ParseAsset(s string) (Asset, error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return Asset{}, fmt.Errorf("malformed asset %q", s)
	}

	amount, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return Asset{}, fmt.Errorf("malformed asset amount %q: %w", parts[0], err)
	}

	return Asset{Amount: amount, Symbol: parts[1]}, nil
}

// Balance is the liquid and savings position of an account across both
// denominations, plus vesting amounts.
type Balance struct {
	Hive                   float64
	HBD                    float64
	SavingsHive            float64
	SavingsHBD             float64
	VestingShares          string
	DelegatedVestingShares string
	ReceivedVestingShares  string
}

// Balances parses the account's asset strings into a Balance.
func (a *Account) Balances() (Balance, error) {
	hive, err := ParseAsset(a.Balance)
	if err != nil {
		return Balance{}, err
	}
	hbd, err := ParseAsset(a.HBDBalance)
	if err != nil {
		return Balance{}, err
	}
	savHive, err := ParseAsset(a.SavingsBalance)
	if err != nil {
		return Balance{}, err
	}
	savHBD, err := ParseAsset(a.SavingsHBDBalance)
	if err != nil {
		return Balance{}, err
	}

	return Balance{
		Hive:                   hive.Amount,
		HBD:                    hbd.Amount,
		SavingsHive:            savHive.Amount,
		SavingsHBD:             savHBD.Amount,
		VestingShares:          a.VestingShares,
		DelegatedVestingShares: a.DelegatedVestingShares,
		ReceivedVestingShares:  a.ReceivedVestingShares,
	}, nil
}

// Demo market prices. Real price discovery is out of scope for the showcase.
const (
	hivePriceUSD = 0.25
	hbdPriceUSD  = 1.00
)

// EstimateAccountValue returns the rough USD value of the liquid and savings
// balances using fixed demo prices.
func EstimateAccountValue(b Balance) float64 {
	return b.Hive*hivePriceUSD +
		b.HBD*hbdPriceUSD +
		b.SavingsHive*hivePriceUSD +
		b.SavingsHBD*hbdPriceUSD
}
