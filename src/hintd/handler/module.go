// Package handler wires the daemon's inbound transports into an Fx application.
package handler

import (
	"github.com/overlaykit/hintd/src/hintd/controller"
	hintddaemon "github.com/overlaykit/hintd/src/hintd/controller/hintd"
	handler "github.com/overlaykit/hintd/src/hintd/handler/hintd-daemon"
	"github.com/overlaykit/hintd/src/hintd/repository/session"
	"go.uber.org/fx"
)

// Module provides the hintd server into an Fx application.
var Module = fx.Options(
	controller.Module,
	fx.Provide(session.New),
	fx.Provide(handler.New),
	fx.Invoke(func(h handler.Handler) {}),
	fx.Invoke(func(c hintddaemon.Controller) {}),
)
