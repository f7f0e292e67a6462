package errors

import stderr "errors"

// New returns an error that formats as the given text.
// Each call to New returns a distinct error value even if the text is identical.
func New(msg string) error {
	return stderr.New(msg)
}

var (
	// NoConnectionError reports that no analysis connection is available for the document.
	NoConnectionError = New("no analysis connection for document")
	// NoMessageOnWireError reports that the request is missing a message.
	NoMessageOnWireError = New("no message on wire")
)

// IsNoConnection reports whether the error indicates a missing analysis connection.
func IsNoConnection(e error) bool {
	return stderr.Is(e, NoConnectionError)
}
