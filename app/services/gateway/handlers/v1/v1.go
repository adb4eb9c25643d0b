// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/codehive-india/showcase/app/services/gateway/handlers/v1/hivegrp"
	"github.com/codehive-india/showcase/business/core/broadcast"
	"github.com/codehive-india/showcase/foundation/events"
	"github.com/codehive-india/showcase/foundation/hive"
	"github.com/codehive-india/showcase/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// The v1 routes live under the /api prefix the front-end expects.
const version = "api"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log  *zap.SugaredLogger
	Hive *hive.Client
	Sim  *broadcast.Simulator
	Evts *events.Events
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	hg := hivegrp.Handlers{
		Log:  cfg.Log,
		Hive: cfg.Hive,
		Sim:  cfg.Sim,
		WS: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		Evts: cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/health", hg.Health)
	app.Handle(http.MethodGet, version, "/account/:username", hg.Account)
	app.Handle(http.MethodPost, version, "/post", hg.Post)
	app.Handle(http.MethodGet, version, "/trending", hg.Trending)
	app.Handle(http.MethodGet, version, "/post/:author/:permlink", hg.Content)
	app.Handle(http.MethodGet, version, "/history/:username", hg.History)
	app.Handle(http.MethodGet, version, "/events", hg.Events)
}
