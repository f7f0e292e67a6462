// Package entity contains the domain logic for the hintd service.
package entity

import (
	"github.com/gofrs/uuid"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

type keyType string

// SessionContextKey indicates the key to be used to identify the session UUID in the context.
const SessionContextKey keyType = "SessionUUID"

// Session entity representing a single editor session.
type Session struct {
	UUID             uuid.UUID                  `json:"uuid" zap:"uuid"`
	InitializeParams *protocol.InitializeParams `json:"-" zap:"-"`
	Conn             *jsonrpc2.Conn             `json:"-" zap:"-"`
	WorkspaceRoot    string                     `json:"workspaceRoot" zap:"workspaceRoot"`

	// HintConfig is the active hint configuration for the session.
	// Installed with defaults at initialize time and replaced wholesale by setup.
	HintConfig *HintConfig `json:"-" zap:"-"`
	// HintsEnabled gates whether trigger events schedule hint fetches.
	// Evaluated at trigger time only; in-flight fetches are never suppressed.
	HintsEnabled bool `json:"hintsEnabled" zap:"hintsEnabled"`
}

// TextDocumentIdentifierWithSession is a wrapper around TextDocumentIdentifier to include the session UUID.
type TextDocumentIdentifierWithSession struct {
	Document    protocol.TextDocumentIdentifier
	SessionUUID uuid.UUID
}
