// Package app assembles the hintd application module.
package app

import (
	"context"
	"time"

	"github.com/overlaykit/hintd/src/hintd/gateway"
	notifier "github.com/overlaykit/hintd/src/hintd/gateway/editor-client"
	"github.com/overlaykit/hintd/src/hintd/handler"
	"github.com/overlaykit/hintd/src/hintd/internal/core"
	"github.com/overlaykit/hintd/src/hintd/internal/executor"
	"github.com/overlaykit/hintd/src/hintd/internal/fs"
	"github.com/overlaykit/hintd/src/hintd/internal/jsonrpcfx"
	"github.com/overlaykit/hintd/src/hintd/internal/serverinfofile"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/fx"
)

// Module defines the hintd application module.
var Module = fx.Options(
	gateway.Module, // outbounds
	handler.Module, // inbounds
	jsonrpcfx.Module,
	fs.Module,
	executor.Module,
	serverinfofile.Module,
	core.ConfigModule,
	core.LoggerModule,
	fx.Provide(notifier.New),
	fx.Provide(func(lc fx.Lifecycle) tally.Scope {
		rs, closer := tally.NewRootScope(tally.ScopeOptions{
			Tags: map[string]string{
				"service": "hintd",
			},
		}, 1*time.Second)

		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})

		return rs
	}),
	fx.Decorate(decorateEnvContext),
	fx.Decorate(decorateConfigProvider),
	fx.Provide(func() Context {
		return Context{
			Environment:        "local",
			RuntimeEnvironment: "local",
		}
	}),
)
