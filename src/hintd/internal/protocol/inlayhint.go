// Package protocol supplements go.lsp.dev/protocol with LSP 3.17 inlay hint
// types, which are not yet available in the upstream package, and with the
// overlay methods that hintd sends to the editor host.
package protocol

import (
	"go.lsp.dev/protocol"
)

// MethodTextDocumentInlayHint is the LSP 3.17 method for requesting inlay hints.
const MethodTextDocumentInlayHint = "textDocument/inlayHint"

// InlayHintKind is the kind of an inlay hint.
type InlayHintKind int32

const (
	// InlayHintKindType is a hint for a type annotation.
	InlayHintKindType InlayHintKind = 1
	// InlayHintKindParameter is a hint for a parameter name.
	InlayHintKindParameter InlayHintKind = 2
)

// InlayHintParams are the parameters for a textDocument/inlayHint request.
type InlayHintParams struct {
	// TextDocument identifies the document to request hints for.
	TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`
	// Range is the document range for which hints are requested.
	Range protocol.Range `json:"range"`
}

// InlayHint is a single hint as reported by the analysis service.
type InlayHint struct {
	// Position is the position reported by the service for this hint.
	Position protocol.Position `json:"position"`
	// Label is the display text of the hint.
	Label string `json:"label"`
	// Kind of the hint. Optional on the wire; zero means unspecified.
	Kind InlayHintKind `json:"kind,omitempty"`
}
