// Package gateway exposes the outbound gateways for this service.
package gateway

import (
	analysisclient "github.com/overlaykit/hintd/src/hintd/gateway/analysis-client"
	"go.uber.org/fx"
)

// Module provides the outbound gateways into an Fx application.
var Module = fx.Options(
	analysisclient.Module,
)
