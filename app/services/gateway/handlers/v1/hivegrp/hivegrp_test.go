package hivegrp_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/codehive-india/showcase/app/services/gateway/handlers"
	"github.com/codehive-india/showcase/business/core/broadcast"
	"github.com/codehive-india/showcase/foundation/events"
	"github.com/codehive-india/showcase/foundation/hive"
	"github.com/codehive-india/showcase/foundation/logger"
	"github.com/gorilla/websocket"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// buildGateway constructs the public mux against the specified node url.
func buildGateway(t *testing.T, nodeURL string) (http.Handler, *events.Events) {
	t.Helper()

	log, err := logger.New("TEST")
	if err != nil {
		t.Fatalf("construct logger: %s", err)
	}

	evts := events.New()
	shutdown := make(chan os.Signal, 1)
	mux := handlers.PublicMux(handlers.MuxConfig{
		Shutdown: shutdown,
		Log:      log,
		Hive:     hive.NewClient([]string{nodeURL}),
		Sim:      &broadcast.Simulator{Log: log},
		Evts:     evts,
	})

	return mux, evts
}

// newGateway builds the public mux against a fake upstream node answering
// with the configured per-method results.
func newGateway(t *testing.T, results map[string]string) (http.Handler, *events.Events, func()) {
	t.Helper()

	node := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string `json:"method"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode rpc request: %s", err)
		}

		result, exists := results[req.Method]
		if !exists {
			w.Write([]byte(`{"jsonrpc":"2.0","error":{"code":-32601,"message":"method not found"},"id":1}`))
			return
		}
		w.Write([]byte(`{"jsonrpc":"2.0","result":` + result + `,"id":1}`))
	}))

	mux, evts := buildGateway(t, node.URL)

	return mux, evts, node.Close
}

func TestHealth(t *testing.T) {
	mux, _, teardown := newGateway(t, nil)
	defer teardown()

	t.Log("Given the need to check gateway liveness.")
	{
		t.Log("\tTest 0:\tWhen calling GET /api/health.")
		{
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			mux.ServeHTTP(w, r)

			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tTest 0:\tShould get status 200, got %d.", failed, w.Code)
			}
			t.Logf("\t%s\tTest 0:\tShould get status 200.", success)

			var resp struct {
				Status string `json:"status"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Status != "ok" {
				t.Fatalf("\t%s\tTest 0:\tShould report ok: %s", failed, w.Body.String())
			}
			t.Logf("\t%s\tTest 0:\tShould report ok.", success)
		}
	}
}

func TestAccountRoute(t *testing.T) {
	t.Log("Given the need to proxy account lookups.")
	{
		t.Log("\tTest 0:\tWhen the account exists upstream.")
		{
			mux, _, teardown := newGateway(t, map[string]string{
				"condenser_api.get_accounts": `[{"name":"alice","balance":"1.000 HIVE","hbd_balance":"0.000 HBD","savings_balance":"0.000 HIVE","savings_hbd_balance":"0.000 HBD"}]`,
			})
			defer teardown()

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/account/alice", nil)
			mux.ServeHTTP(w, r)

			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tTest 0:\tShould get status 200, got %d: %s", failed, w.Code, w.Body.String())
			}
			t.Logf("\t%s\tTest 0:\tShould get status 200.", success)

			var account hive.Account
			if err := json.Unmarshal(w.Body.Bytes(), &account); err != nil || account.Name != "alice" {
				t.Fatalf("\t%s\tTest 0:\tShould get the account record: %s", failed, w.Body.String())
			}
			t.Logf("\t%s\tTest 0:\tShould get the account record.", success)
		}

		t.Log("\tTest 1:\tWhen the account is absent upstream.")
		{
			mux, _, teardown := newGateway(t, map[string]string{
				"condenser_api.get_accounts": `[]`,
			})
			defer teardown()

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/account/unknown_user_xyz", nil)
			mux.ServeHTTP(w, r)

			if w.Code != http.StatusNotFound {
				t.Fatalf("\t%s\tTest 1:\tShould get status 404, got %d.", failed, w.Code)
			}
			t.Logf("\t%s\tTest 1:\tShould get status 404.", success)
		}

		t.Log("\tTest 2:\tWhen every node is unreachable.")
		{
			dead := httptest.NewServer(nil)
			dead.Close()

			mux, _ := buildGateway(t, dead.URL)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/account/alice", nil)
			mux.ServeHTTP(w, r)

			if w.Code != http.StatusInternalServerError {
				t.Fatalf("\t%s\tTest 2:\tShould get status 500, got %d.", failed, w.Code)
			}
			t.Logf("\t%s\tTest 2:\tShould get status 500.", success)

			// The upstream detail stays in the logs; callers get the
			// generic message.
			var resp struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Error != http.StatusText(http.StatusInternalServerError) {
				t.Fatalf("\t%s\tTest 2:\tShould get the generic message: %s", failed, w.Body.String())
			}
			t.Logf("\t%s\tTest 2:\tShould get the generic message.", success)
		}
	}
}

func TestPostRoute(t *testing.T) {
	mux, _, teardown := newGateway(t, nil)
	defer teardown()

	t.Log("Given the need to accept simulated publish requests.")
	{
		t.Log("\tTest 0:\tWhen all required fields are present.")
		{
			body := `{"author":"alice","title":"My Cool Project","body":"details","tags":["hive","dev"]}`

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/api/post", strings.NewReader(body))
			mux.ServeHTTP(w, r)

			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tTest 0:\tShould get status 200, got %d: %s", failed, w.Code, w.Body.String())
			}
			t.Logf("\t%s\tTest 0:\tShould get status 200.", success)

			var result broadcast.Result
			if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould decode the result: %s", failed, err)
			}
			if !result.Success || result.PostID != "alice/my-cool-project" {
				t.Fatalf("\t%s\tTest 0:\tShould get the simulated success, got %+v.", failed, result)
			}
			t.Logf("\t%s\tTest 0:\tShould get the simulated success.", success)

			// Two identical submissions yield two independent responses.
			w2 := httptest.NewRecorder()
			r2 := httptest.NewRequest(http.MethodPost, "/api/post", strings.NewReader(body))
			mux.ServeHTTP(w2, r2)
			if w2.Code != http.StatusOK {
				t.Fatalf("\t%s\tTest 0:\tShould accept the repeat submission, got %d.", failed, w2.Code)
			}
			t.Logf("\t%s\tTest 0:\tShould accept the repeat submission.", success)
		}

		t.Log("\tTest 1:\tWhen the tags list is present but empty.")
		{
			body := `{"author":"alice","title":"My Project","body":"details","tags":[]}`

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/api/post", strings.NewReader(body))
			mux.ServeHTTP(w, r)

			// Presence is all that is validated; an empty list still
			// gets the simulated success.
			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tTest 1:\tShould get status 200, got %d: %s", failed, w.Code, w.Body.String())
			}
			t.Logf("\t%s\tTest 1:\tShould get status 200.", success)

			var result broadcast.Result
			if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil || !result.Success {
				t.Fatalf("\t%s\tTest 1:\tShould get the simulated success: %s", failed, w.Body.String())
			}
			t.Logf("\t%s\tTest 1:\tShould get the simulated success.", success)
		}

		t.Log("\tTest 2:\tWhen required fields are missing.")
		{
			body := `{"author":"alice","body":"details"}`

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/api/post", strings.NewReader(body))
			mux.ServeHTTP(w, r)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("\t%s\tTest 2:\tShould get status 400, got %d.", failed, w.Code)
			}
			t.Logf("\t%s\tTest 2:\tShould get status 400.", success)
		}
	}
}

func TestContentRoute(t *testing.T) {
	t.Log("Given the need to proxy post lookups.")
	{
		t.Log("\tTest 0:\tWhen the upstream returns an empty record.")
		{
			mux, _, teardown := newGateway(t, map[string]string{
				"condenser_api.get_content": `{"author":"","permlink":""}`,
			})
			defer teardown()

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/post/alice/missing-post", nil)
			mux.ServeHTTP(w, r)

			if w.Code != http.StatusNotFound {
				t.Fatalf("\t%s\tTest 0:\tShould get status 404, got %d.", failed, w.Code)
			}
			t.Logf("\t%s\tTest 0:\tShould get status 404.", success)
		}
	}
}

func TestTrendingRoute(t *testing.T) {
	t.Log("Given the need to proxy trending lookups.")
	{
		t.Log("\tTest 0:\tWhen the upstream answers.")
		{
			mux, _, teardown := newGateway(t, map[string]string{
				"condenser_api.get_discussions_by_trending": `[{"author":"alice","permlink":"p1","title":"One"},{"author":"bob","permlink":"p2","title":"Two"}]`,
			})
			defer teardown()

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/trending?limit=2&tag=hive", nil)
			mux.ServeHTTP(w, r)

			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tTest 0:\tShould get status 200, got %d.", failed, w.Code)
			}

			var posts []hive.Discussion
			if err := json.Unmarshal(w.Body.Bytes(), &posts); err != nil || len(posts) != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould get 2 posts: %s", failed, w.Body.String())
			}
			t.Logf("\t%s\tTest 0:\tShould get the trending posts.", success)
		}

		t.Log("\tTest 1:\tWhen the limit is malformed.")
		{
			mux, _, teardown := newGateway(t, nil)
			defer teardown()

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/trending?limit=abc", nil)
			mux.ServeHTTP(w, r)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("\t%s\tTest 1:\tShould get status 400, got %d.", failed, w.Code)
			}
			t.Logf("\t%s\tTest 1:\tShould get status 400.", success)
		}
	}
}

func TestHistoryRoute(t *testing.T) {
	t.Log("Given the need to proxy account history.")
	{
		t.Log("\tTest 0:\tWhen the upstream answers with history tuples.")
		{
			mux, _, teardown := newGateway(t, map[string]string{
				"condenser_api.get_account_history": `[[41, {"trx_id":"abc123","block":7,"op":["transfer",{"from":"bob","to":"alice","amount":"1.000 HIVE"}],"timestamp":"2025-08-01T12:00:00"}]]`,
			})
			defer teardown()

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/history/alice?limit=5", nil)
			mux.ServeHTTP(w, r)

			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tTest 0:\tShould get status 200, got %d: %s", failed, w.Code, w.Body.String())
			}
			t.Logf("\t%s\tTest 0:\tShould get status 200.", success)

			var entries []hive.HistoryEntry
			if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil || len(entries) != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould get 1 entry: %s", failed, w.Body.String())
			}
			if entries[0].Index != 41 || entries[0].OpType != "transfer" || entries[0].Block != 7 {
				t.Fatalf("\t%s\tTest 0:\tShould keep the upstream tuple shape, got %+v.", failed, entries[0])
			}
			t.Logf("\t%s\tTest 0:\tShould keep the upstream tuple shape.", success)
		}

		t.Log("\tTest 1:\tWhen every node is unreachable.")
		{
			dead := httptest.NewServer(nil)
			dead.Close()

			mux, _ := buildGateway(t, dead.URL)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/history/alice", nil)
			mux.ServeHTTP(w, r)

			if w.Code != http.StatusInternalServerError {
				t.Fatalf("\t%s\tTest 1:\tShould get status 500, got %d.", failed, w.Code)
			}
			t.Logf("\t%s\tTest 1:\tShould get status 500.", success)
		}
	}
}

func TestEventsRoute(t *testing.T) {
	mux, evts, teardown := newGateway(t, nil)
	defer teardown()

	srv := httptest.NewServer(mux)
	defer srv.Close()

	t.Log("Given the need to stream the live feed over a websocket.")
	{
		t.Log("\tTest 0:\tWhen a client subscribes and activity arrives.")
		{
			url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/events"

			c, _, err := websocket.DefaultDialer.Dial(url, nil)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to dial the feed: %s", failed, err)
			}
			defer c.Close()
			t.Logf("\t%s\tTest 0:\tShould be able to dial the feed.", success)

			// The subscription registers server side after the upgrade,
			// so keep sending until a message comes through.
			done := make(chan struct{})
			defer close(done)
			go func() {
				for {
					select {
					case <-done:
						return
					case <-time.After(10 * time.Millisecond):
						evts.Send("post submitted: alice/my-cool-project")
					}
				}
			}()

			c.SetReadDeadline(time.Now().Add(5 * time.Second))
			_, msg, err := c.ReadMessage()
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould receive a feed message: %s", failed, err)
			}
			if string(msg) != "post submitted: alice/my-cool-project" {
				t.Fatalf("\t%s\tTest 0:\tShould receive the activity message, got %q.", failed, msg)
			}
			t.Logf("\t%s\tTest 0:\tShould receive the activity message.", success)
		}
	}
}
