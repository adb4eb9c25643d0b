package broadcast_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/codehive-india/showcase/business/core/broadcast"
	"github.com/codehive-india/showcase/foundation/hive"
	"github.com/codehive-india/showcase/foundation/keychain"
	"github.com/codehive-india/showcase/foundation/logger"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// stubKeychain answers every request with the configured response. When hang
// is set, the callback is never invoked.
type stubKeychain struct {
	resp keychain.Response
	hang bool
}

func (k *stubKeychain) RequestBroadcast(account string, ops []hive.Operation, authority string, respond func(keychain.Response)) {
	if k.hang {
		return
	}
	go respond(k.resp)
}

func TestSign(t *testing.T) {
	ops := []hive.Operation{{Type: "comment", Body: hive.CommentOperation{Author: "alice"}}}

	t.Log("Given the need to delegate signing to a keychain.")
	{
		t.Log("\tTest 0:\tWhen no keychain is present.")
		{
			_, err := broadcast.Sign(context.Background(), nil, "alice", ops)
			if !errors.Is(err, broadcast.ErrSigningUnavailable) {
				t.Fatalf("\t%s\tTest 0:\tShould fail immediately with ErrSigningUnavailable, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould fail immediately with ErrSigningUnavailable.", success)
		}

		t.Log("\tTest 1:\tWhen the keychain reports success.")
		{
			kc := stubKeychain{resp: keychain.Response{Success: true, Message: "broadcast"}}

			resp, err := broadcast.Sign(context.Background(), &kc, "alice", ops)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould resolve with the response: %s", failed, err)
			}
			if !resp.Success || resp.Message != "broadcast" {
				t.Fatalf("\t%s\tTest 1:\tShould carry the keychain payload, got %+v.", failed, resp)
			}
			t.Logf("\t%s\tTest 1:\tShould resolve with the keychain payload.", success)
		}

		t.Log("\tTest 2:\tWhen the keychain reports failure.")
		{
			kc := stubKeychain{resp: keychain.Response{Message: "user rejected"}}

			if _, err := broadcast.Sign(context.Background(), &kc, "alice", ops); err == nil {
				t.Fatalf("\t%s\tTest 2:\tShould reject with the failure reason.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould reject with the failure reason.", success)
		}

		t.Log("\tTest 3:\tWhen the keychain hangs.")
		{
			kc := stubKeychain{hang: true}

			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()

			if _, err := broadcast.Sign(ctx, &kc, "alice", ops); !errors.Is(err, context.DeadlineExceeded) {
				t.Fatalf("\t%s\tTest 3:\tShould give up when the context expires, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 3:\tShould give up when the context expires.", success)
		}
	}
}

func TestFileKeychain(t *testing.T) {
	t.Log("Given the need to sign with the development keychain.")
	{
		t.Log("\tTest 0:\tWhen the key file is missing.")
		{
			kc := keychain.NewFileKeychain("does/not/exist.ecdsa")

			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			ops := []hive.Operation{{Type: "comment", Body: hive.CommentOperation{Author: "alice"}}}
			if _, err := broadcast.Sign(ctx, kc, "alice", ops); err == nil {
				t.Fatalf("\t%s\tTest 0:\tShould reject when the key cannot be loaded.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould reject when the key cannot be loaded.", success)
		}
	}
}

func TestSimulator(t *testing.T) {
	log, err := logger.New("TEST")
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct a logger: %s", failed, err)
	}
	defer log.Sync()

	sim := broadcast.Simulator{Log: log}

	t.Log("Given the need to simulate the server broadcast path.")
	{
		t.Log("\tTest 0:\tWhen submitting a publish intent.")
		{
			result := sim.Broadcast("alice", "My Cool Project", []string{"hive", "dev"})

			if !result.Success {
				t.Fatalf("\t%s\tTest 0:\tShould always report success.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould always report success.", success)

			if result.PostID != "alice/my-cool-project" {
				t.Fatalf("\t%s\tTest 0:\tShould derive the post id, got %q.", failed, result.PostID)
			}
			t.Logf("\t%s\tTest 0:\tShould derive the post id.", success)

			if result.Message != "Content posted successfully (simulated)" {
				t.Fatalf("\t%s\tTest 0:\tShould label the response as simulated, got %q.", failed, result.Message)
			}
			t.Logf("\t%s\tTest 0:\tShould label the response as simulated.", success)
		}

		t.Log("\tTest 1:\tWhen submitting the same intent twice.")
		{
			first := sim.Broadcast("alice", "Same Title", []string{"hive"})
			second := sim.Broadcast("alice", "Same Title", []string{"hive"})

			// No dedup: two independent simulated responses.
			if first.PostID != second.PostID || !first.Success || !second.Success {
				t.Fatalf("\t%s\tTest 1:\tShould produce two independent responses.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould produce two independent responses.", success)
		}
	}
}
