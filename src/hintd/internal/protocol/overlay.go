package protocol

import (
	"go.lsp.dev/uri"
)

// Custom methods sent from hintd to the editor host. They mirror the push
// model of textDocument/publishDiagnostics: the editor owns the rendering
// surface, hintd owns the contents of its annotation namespace.
const (
	// MethodOverlayApply replaces the contents of the hintd namespace for a document.
	MethodOverlayApply = "overlay/apply"
	// MethodOverlayClear removes all hintd markers for a document.
	MethodOverlayClear = "overlay/clear"
)

// Namespace is the marker namespace that isolates hintd annotations from
// unrelated decorations in the same document.
const Namespace = "hintd"

// AnnotationMode selects where an annotation is rendered relative to its anchor.
type AnnotationMode string

const (
	// AnnotationInlineBefore renders the text immediately before the anchor position.
	AnnotationInlineBefore AnnotationMode = "inlineBefore"
	// AnnotationInlineAfter renders the text immediately after the anchor position.
	AnnotationInlineAfter AnnotationMode = "inlineAfter"
)

// Annotation is a single rendered overlay marker.
// Line and Character are 0-based overlay coordinates.
type Annotation struct {
	ID        int            `json:"id"`
	Text      string         `json:"text"`
	Line      uint32         `json:"line"`
	Character uint32         `json:"character"`
	Mode      AnnotationMode `json:"mode"`
}

// ApplyAnnotationsParams carries a full batch of annotations for one document.
// The editor is expected to replace the namespace contents with the batch,
// not append to them.
type ApplyAnnotationsParams struct {
	URI         uri.URI      `json:"uri"`
	Namespace   string       `json:"namespace"`
	Annotations []Annotation `json:"annotations"`
}

// ClearAnnotationsParams identifies the document whose namespace should be emptied.
type ClearAnnotationsParams struct {
	URI       uri.URI `json:"uri"`
	Namespace string  `json:"namespace"`
}
