package errors

import (
	"fmt"

	"go.lsp.dev/protocol"
)

// DocumentNotFoundError indicates that a document is not tracked for the session.
type DocumentNotFoundError struct {
	Document protocol.TextDocumentIdentifier
}

// Error is an implementation of the error interface.
func (n *DocumentNotFoundError) Error() string {
	return fmt.Sprintf("document %q not found", n.Document.URI)
}

// DocumentLanguageIDError indicates that a document's language ID does not match any of the expected values.
type DocumentLanguageIDError struct {
	Document            protocol.TextDocumentItem
	ExpectedLanguageIDs []protocol.LanguageIdentifier
}

// Error is an implementation of the error interface.
func (n *DocumentLanguageIDError) Error() string {
	return fmt.Sprintf("unexpected document type for %q. expected one of %q, found %q", n.Document.URI, n.ExpectedLanguageIDs, n.Document.LanguageID)
}
