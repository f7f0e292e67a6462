package hintddaemon

import (
	"context"

	"github.com/overlaykit/hintd/src/hintd/mapper"
	"go.lsp.dev/jsonrpc2"
)

// HintsSetup replaces the session's hint configuration with the caller's options merged over the configured defaults.
func (r *jsonRPCRouter) HintsSetup(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToRawHintOptions(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	err = r.daemon.HintsSetup(ctx, params)
	return reply(ctx, nil, err)
}

// HintsShow enables hint rendering for the session.
func (r *jsonRPCRouter) HintsShow(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	err := r.daemon.HintsShow(ctx)
	return reply(ctx, nil, err)
}

// HintsHide disables hint rendering and clears the session's annotations.
func (r *jsonRPCRouter) HintsHide(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	err := r.daemon.HintsHide(ctx)
	return reply(ctx, nil, err)
}

// HintsToggle flips the session between the shown and hidden states.
func (r *jsonRPCRouter) HintsToggle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	err := r.daemon.HintsToggle(ctx)
	return reply(ctx, nil, err)
}
