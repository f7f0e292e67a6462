package mapper

import (
	"github.com/overlaykit/hintd/src/hintd/entity"
	hintdprotocol "github.com/overlaykit/hintd/src/hintd/internal/protocol"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// HintsToAnnotations converts service-reported hints into an annotation batch.
// The analysis service reports 1-based positions; overlay anchors are 0-based,
// hence the shift. IDs are sequential from 1 in response order.
func HintsToAnnotations(hints []hintdprotocol.InlayHint) []entity.Annotation {
	annotations := make([]entity.Annotation, 0, len(hints))
	for i, hint := range hints {
		annotation := entity.Annotation{
			ID:        i + 1,
			Line:      shiftToOverlay(hint.Position.Line),
			Character: shiftToOverlay(hint.Position.Character),
		}
		if hint.Kind == hintdprotocol.InlayHintKindParameter {
			annotation.Mode = hintdprotocol.AnnotationInlineBefore
			annotation.Text = ": " + hint.Label
		} else {
			annotation.Mode = hintdprotocol.AnnotationInlineAfter
			annotation.Text = hint.Label + ": "
		}
		annotations = append(annotations, annotation)
	}
	return annotations
}

// shiftToOverlay converts a 1-based service coordinate to a 0-based overlay
// coordinate, clamping at 0 rather than wrapping on malformed input.
func shiftToOverlay(v uint32) uint32 {
	if v == 0 {
		return 0
	}
	return v - 1
}

// AnnotationsToApplyParams wraps an annotation batch into the wire params for overlay/apply.
func AnnotationsToApplyParams(docURI uri.URI, batch []entity.Annotation) *hintdprotocol.ApplyAnnotationsParams {
	wire := make([]hintdprotocol.Annotation, 0, len(batch))
	for _, a := range batch {
		wire = append(wire, hintdprotocol.Annotation{
			ID:        a.ID,
			Text:      a.Text,
			Line:      a.Line,
			Character: a.Character,
			Mode:      a.Mode,
		})
	}
	return &hintdprotocol.ApplyAnnotationsParams{
		URI:         docURI,
		Namespace:   hintdprotocol.Namespace,
		Annotations: wire,
	}
}

// DocumentToClearParams builds the wire params for overlay/clear.
func DocumentToClearParams(docURI uri.URI) *hintdprotocol.ClearAnnotationsParams {
	return &hintdprotocol.ClearAnnotationsParams{
		URI:       docURI,
		Namespace: hintdprotocol.Namespace,
	}
}

// ContentToWholeDocumentRange returns a range spanning the entire document contents.
func ContentToWholeDocumentRange(content string) (protocol.Range, error) {
	m := hintdprotocol.NewTextOffsetMapper([]byte(content))
	end, err := m.OffsetPosition(len(content))
	if err != nil {
		return protocol.Range{}, err
	}
	return protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End:   end,
	}, nil
}
