// Package factory provides user-defined factories for commonly constructed test values.
package factory

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"
	hintplugin "github.com/overlaykit/hintd/src/hintd/entity/hint-plugin"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

// UUID is a user-defined factory for a random uuid.UUID.
func UUID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

// JSONRPCRequest is a user-defined factory for a JSON-RPC request containing the specified method and parameters.
func JSONRPCRequest(method string, params interface{}) jsonrpc2.Request {
	req, _ := jsonrpc2.NewCall(jsonrpc2.NewNumberID(5), method, params)
	return req
}

// PluginInfoValid is a factory for PluginInfo that passes validation.
func PluginInfoValid(id int) hintplugin.PluginInfo {
	sampleDidOpenFunc := func(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
		return nil
	}
	return hintplugin.PluginInfo{
		Priorities: map[string]hintplugin.Priority{
			protocol.MethodTextDocumentDidOpen: hintplugin.PriorityHigh,
		},
		Methods: &hintplugin.Methods{
			PluginNameKey: fmt.Sprintf("test-plugin-%v", id),

			DidOpen: sampleDidOpenFunc,
		},
		NameKey: fmt.Sprintf("test-plugin-%v", id),
	}
}

// PluginInfoInvalid is a factory for PluginInfo that fails validation.
func PluginInfoInvalid(id int) hintplugin.PluginInfo {
	return hintplugin.PluginInfo{
		Priorities: map[string]hintplugin.Priority{
			protocol.MethodTextDocumentDidOpen: hintplugin.PriorityHigh,
		},
		Methods: &hintplugin.Methods{},
		NameKey: fmt.Sprintf("test-plugin-%v", id),
	}
}
