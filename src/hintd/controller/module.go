// Package controller exposes the controllers for this service.
package controller

import (
	docstate "github.com/overlaykit/hintd/src/hintd/controller/doc-state"
	hintddaemon "github.com/overlaykit/hintd/src/hintd/controller/hintd"
	"github.com/overlaykit/hintd/src/hintd/controller/hints"
	"github.com/overlaykit/hintd/src/hintd/controller/overlay"
	"go.uber.org/fx"
)

// Module provides all controllers for this service.
var Module = fx.Options(
	fx.Provide(hintddaemon.New),
	fx.Provide(docstate.New),
	fx.Provide(overlay.New),
	fx.Provide(hints.New),
)
