// Package broadcast implements the two strategies for submitting composed
// operations: delegating signing to a keychain, or the server's simulated
// path which never touches a signing key.
package broadcast

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/codehive-india/showcase/foundation/hive"
	"github.com/codehive-india/showcase/foundation/keychain"
	"go.uber.org/zap"
)

// ErrSigningUnavailable is returned when no keychain capability is present.
var ErrSigningUnavailable = errors.New("signing capability unavailable")

// Sign hands the operations to the keychain at posting authority and waits
// for its single completion callback. The context bounds the wait, so a hung
// keychain cannot block the caller forever.
func Sign(ctx context.Context, kc keychain.Keychain, account string, ops []hive.Operation) (keychain.Response, error) {
	if kc == nil {
		return keychain.Response{}, ErrSigningUnavailable
	}

	resp := make(chan keychain.Response, 1)
	var once sync.Once
	kc.RequestBroadcast(account, ops, keychain.AuthorityPosting, func(r keychain.Response) {
		once.Do(func() {
			resp <- r
		})
	})

	select {
	case r := <-resp:
		if !r.Success {
			return r, fmt.Errorf("broadcast rejected: %s", r.Message)
		}
		return r, nil

	case <-ctx.Done():
		return keychain.Response{}, ctx.Err()
	}
}

// =============================================================================

var slugWhitespace = regexp.MustCompile(`\s+`)

// Result is the synthesized outcome of a simulated publish.
type Result struct {
	Success   bool      `json:"success"`
	PostID    string    `json:"post_id"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// Simulator is the non-committal broadcast path. It logs the intent and
// synthesizes a success response; no signing key exists on this side and
// nothing reaches the chain. Repeated calls produce independent responses.
type Simulator struct {
	Log *zap.SugaredLogger
}

// Broadcast records the publish intent and returns a simulated success.
func (s *Simulator) Broadcast(author string, title string, tags []string) Result {
	s.Log.Infow("would post to hive blockchain", "author", author, "title", title, "tags", tags)

	slug := slugWhitespace.ReplaceAllString(strings.ToLower(title), "-")

	return Result{
		Success:   true,
		PostID:    fmt.Sprintf("%s/%s", author, slug),
		Timestamp: time.Now().UTC(),
		Message:   "Content posted successfully (simulated)",
	}
}
