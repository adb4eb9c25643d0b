// Package hive provides a client for the condenser API exposed by public
// Hive blockchain nodes. All calls are read-only; the node owns the data.
package hive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultNode is the public endpoint used when no node list is configured.
const DefaultNode = "https://api.hive.blog"

// ErrNotFound is returned when the upstream has no record for the request.
// The condenser API signals a missing entity with an empty result, not an
// error, so the client owns this translation.
var ErrNotFound = errors.New("not found")

// RPCError represents an error returned by a reachable node. It is not
// retried against other nodes since every node would answer the same.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// ParseNodes decodes a JSON array of node base URLs. An empty value yields
// the default public endpoint. This is the same contract the front-end and
// the gateway share through the environment.
func ParseNodes(s string) ([]string, error) {
	if s == "" {
		return []string{DefaultNode}, nil
	}

	var nodes []string
	if err := json.Unmarshal([]byte(s), &nodes); err != nil {
		return nil, fmt.Errorf("parsing node list: %w", err)
	}
	if len(nodes) == 0 {
		return []string{DefaultNode}, nil
	}

	return nodes, nil
}

// Client provides access to a set of Hive nodes. Nodes are tried in the
// configured order; a transport failure moves to the next node once, with
// no retry or backoff against any single node.
type Client struct {
	nodes []string
	http  *http.Client
}

// NewClient constructs a client for the specified ordered node list.
func NewClient(nodes []string) *Client {
	if len(nodes) == 0 {
		nodes = []string{DefaultNode}
	}

	return &Client{
		nodes: nodes,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Nodes returns the configured node list in order.
func (c *Client) Nodes() []string {
	nodes := make([]string, len(c.nodes))
	copy(nodes, c.nodes)
	return nodes
}

// GetAccount returns the account record for the specified handle. ErrNotFound
// is returned when the handle does not exist upstream.
func (c *Client) GetAccount(ctx context.Context, handle string) (*Account, error) {
	var accounts []Account
	if err := c.call(ctx, "condenser_api.get_accounts", []any{[]string{handle}}, &accounts); err != nil {
		return nil, fmt.Errorf("get accounts: %w", err)
	}

	if len(accounts) == 0 {
		return nil, ErrNotFound
	}

	return &accounts[0], nil
}

// DiscussionQuery carries the filter options for a discussion lookup.
type DiscussionQuery struct {
	Tag   string `json:"tag"`
	Limit int    `json:"limit"`
}

// GetDiscussions returns discussions for the specified sort key, such as
// "trending" or "created". The sort key and query pass straight through to
// the node; no local filtering, paging, or caching.
func (c *Client) GetDiscussions(ctx context.Context, sortKey string, query DiscussionQuery) ([]Discussion, error) {
	method := "condenser_api.get_discussions_by_" + sortKey

	var discussions []Discussion
	if err := c.call(ctx, method, []any{query}, &discussions); err != nil {
		return nil, fmt.Errorf("get discussions: %w", err)
	}

	return discussions, nil
}

// GetContent returns a single post. The node reports a missing post as an
// empty record, so an empty author field maps to ErrNotFound.
func (c *Client) GetContent(ctx context.Context, author string, permlink string) (*Discussion, error) {
	var post Discussion
	if err := c.call(ctx, "condenser_api.get_content", []any{author, permlink}, &post); err != nil {
		return nil, fmt.Errorf("get content: %w", err)
	}

	if post.Author == "" {
		return nil, ErrNotFound
	}

	return &post, nil
}

// GetAccountHistory returns operations from the account's history. A start
// of -1 means most recent. Ordering is whatever the node returns.
func (c *Client) GetAccountHistory(ctx context.Context, handle string, start int64, limit int) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	if err := c.call(ctx, "condenser_api.get_account_history", []any{handle, start, limit}, &entries); err != nil {
		return nil, fmt.Errorf("get account history: %w", err)
	}

	return entries, nil
}

// =============================================================================

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
	ID      int    `json:"id"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

// call executes a JSON-RPC request against the node list. Only transport
// level failures advance to the next node; a response from a reachable node
// is final, error or not.
func (c *Client) call(ctx context.Context, method string, params any, result any) error {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      1,
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	for _, node := range c.nodes {
		raw, err := c.roundTrip(ctx, node, body)
		if err != nil {
			lastErr = err
			continue
		}

		var resp rpcResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return fmt.Errorf("unexpected response from %s: %w", node, err)
		}
		if resp.Error != nil {
			return resp.Error
		}

		if err := json.Unmarshal(resp.Result, result); err != nil {
			return fmt.Errorf("unexpected result from %s: %w", node, err)
		}
		return nil
	}

	return fmt.Errorf("all nodes unreachable: %w", lastErr)
}

func (c *Client) roundTrip(ctx context.Context, node string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, node, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("node %s: %w", node, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("node %s: read body: %w", node, err)
	}

	return raw, nil
}
