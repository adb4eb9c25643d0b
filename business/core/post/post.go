// Package post composes the operations required to publish showcase content
// to the chain. Composition is a pure transformation; the broadcast package
// decides how the operations are submitted.
package post

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/codehive-india/showcase/foundation/hive"
)

// AppID identifies this application in post metadata.
const AppID = "code-hive-india/1.0.0"

// maxAcceptedPayout is the fixed payout ceiling for showcase posts.
const maxAcceptedPayout = "1000000.000 HBD"

// maxPermlinkLength bounds the derived permlink per chain convention.
const maxPermlinkLength = 255

// ValidationError indicates bad caller input.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidationError checks if an error of type ValidationError exists.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var (
	whitespace    = regexp.MustCompile(`\s+`)
	permlinkStrip = regexp.MustCompile(`[^a-z0-9-]`)
)

// Permlink derives the URL-safe slug for a title: lower-case, whitespace
// runs become hyphens, anything outside [a-z0-9-] is stripped, then the
// result is truncated. The derivation is deterministic; uniqueness per
// author is the chain's concern.
func Permlink(title string) string {
	p := strings.ToLower(title)
	p = whitespace.ReplaceAllString(p, "-")
	p = permlinkStrip.ReplaceAllString(p, "")

	if len(p) > maxPermlinkLength {
		p = p[:maxPermlinkLength]
	}

	return p
}

// ParseBeneficiaries parses a comma separated "account:percent" list into
// beneficiary entries. Percent is a whole number in (0,100] and converts to
// basis points. The aggregate may not exceed 100%.
func ParseBeneficiaries(s string) ([]hive.Beneficiary, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var bens []hive.Beneficiary
	var total int

	for entry := range strings.SplitSeq(s, ",") {
		account, percentStr, found := strings.Cut(entry, ":")
		account = strings.TrimSpace(account)
		if !found || account == "" {
			return nil, &ValidationError{Message: "invalid beneficiary format"}
		}

		percent, err := strconv.Atoi(strings.TrimSpace(percentStr))
		if err != nil {
			return nil, &ValidationError{Message: "invalid beneficiary format"}
		}
		if percent <= 0 || percent > 100 {
			return nil, &ValidationError{Message: "invalid beneficiary format"}
		}

		weight := percent * 100
		total += weight
		if total > 10000 {
			return nil, &ValidationError{Message: "beneficiary weights exceed 100%"}
		}

		bens = append(bens, hive.Beneficiary{Account: account, Weight: weight})
	}

	return bens, nil
}

// Compose builds the operation list for a root-level post: the comment
// operation and, when beneficiaries are present, a comment_options operation
// attaching them. Identical inputs always yield identical operations.
func Compose(author string, title string, body string, tags []string, bens []hive.Beneficiary) ([]hive.Operation, error) {
	if author == "" {
		return nil, &ValidationError{Message: "author is required"}
	}
	if title == "" {
		return nil, &ValidationError{Message: "title is required"}
	}
	if body == "" {
		return nil, &ValidationError{Message: "body is required"}
	}

	var cleaned []string
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	if len(cleaned) == 0 {
		return nil, &ValidationError{Message: "at least one tag is required"}
	}

	permlink := Permlink(title)
	if permlink == "" {
		return nil, &ValidationError{Message: "title produces an empty permlink"}
	}

	metadata, err := json.Marshal(struct {
		Tags []string `json:"tags"`
		App  string   `json:"app"`
	}{
		Tags: cleaned,
		App:  AppID,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}

	ops := []hive.Operation{
		{
			Type: "comment",
			Body: hive.CommentOperation{
				ParentAuthor:   "",
				ParentPermlink: cleaned[0],
				Author:         author,
				Permlink:       permlink,
				Title:          title,
				Body:           body,
				JSONMetadata:   string(metadata),
			},
		},
	}

	if len(bens) > 0 {
		ops = append(ops, hive.Operation{
			Type: "comment_options",
			Body: hive.CommentOptionsOperation{
				Author:               author,
				Permlink:             permlink,
				MaxAcceptedPayout:    maxAcceptedPayout,
				PercentHBD:           10000,
				AllowVotes:           true,
				AllowCurationRewards: true,
				Extensions: []hive.Extension{
					{Type: 0, Value: hive.BeneficiarySet{Beneficiaries: bens}},
				},
			},
		})
	}

	return ops, nil
}
