// Package hivegrp maintains the group of handlers proxying the Hive node.
package hivegrp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/codehive-india/showcase/business/core/broadcast"
	"github.com/codehive-india/showcase/business/web/errs"
	"github.com/codehive-india/showcase/foundation/events"
	"github.com/codehive-india/showcase/foundation/hive"
	"github.com/codehive-india/showcase/foundation/validate"
	"github.com/codehive-india/showcase/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// defaultLimit applies when a list request carries no limit parameter.
const defaultLimit = 10

// Handlers manages the set of hive proxy endpoints.
type Handlers struct {
	Log  *zap.SugaredLogger
	Hive *hive.Client
	Sim  *broadcast.Simulator
	WS   websocket.Upgrader
	Evts *events.Events
}

// Health is the liveness check used by the front-end.
func (h Handlers) Health(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := struct {
		Status    string    `json:"status"`
		Timestamp time.Time `json:"timestamp"`
	}{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Account looks up a single account by handle.
func (h Handlers) Account(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	username := web.Param(r, "username")

	account, err := h.Hive.GetAccount(ctx, username)
	if err != nil {
		if errors.Is(err, hive.ErrNotFound) {
			return errs.NewTrusted(errors.New("account not found"), http.StatusNotFound)
		}
		return fmt.Errorf("account[%s]: %w", username, err)
	}

	return web.Respond(ctx, w, account, http.StatusOK)
}

// Post accepts a publish request and runs the simulated broadcast path. By
// design nothing is signed or committed here; the response says so.
func (h Handlers) Post(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var np newPost
	if err := web.Decode(r, &np); err != nil {
		if validate.IsFieldErrors(err) {
			return err
		}
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	result := h.Sim.Broadcast(np.Author, np.Title, np.Tags)
	h.Evts.Send(fmt.Sprintf("post submitted: %s", result.PostID))

	return web.Respond(ctx, w, result, http.StatusOK)
}

// Trending returns discussions sorted by trending.
func (h Handlers) Trending(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	limit, err := queryLimit(r)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	query := hive.DiscussionQuery{
		Tag:   r.URL.Query().Get("tag"),
		Limit: limit,
	}

	discussions, err := h.Hive.GetDiscussions(ctx, "trending", query)
	if err != nil {
		return fmt.Errorf("trending[%+v]: %w", query, err)
	}

	return web.Respond(ctx, w, discussions, http.StatusOK)
}

// Content looks up a single post by author and permlink.
func (h Handlers) Content(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	author := web.Param(r, "author")
	permlink := web.Param(r, "permlink")

	post, err := h.Hive.GetContent(ctx, author, permlink)
	if err != nil {
		if errors.Is(err, hive.ErrNotFound) {
			return errs.NewTrusted(errors.New("post not found"), http.StatusNotFound)
		}
		return fmt.Errorf("content[%s/%s]: %w", author, permlink, err)
	}

	return web.Respond(ctx, w, post, http.StatusOK)
}

// History returns the most recent operations for an account.
func (h Handlers) History(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	username := web.Param(r, "username")

	limit, err := queryLimit(r)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	entries, err := h.Hive.GetAccountHistory(ctx, username, -1, limit)
	if err != nil {
		return fmt.Errorf("history[%s]: %w", username, err)
	}

	return web.Respond(ctx, w, entries, http.StatusOK)
}

// Events handles a web socket to provide the live feed to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

func queryLimit(r *http.Request) (int, error) {
	s := r.URL.Query().Get("limit")
	if s == "" {
		return defaultLimit, nil
	}

	limit, err := strconv.Atoi(s)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("invalid limit %q", s)
	}

	return limit, nil
}
