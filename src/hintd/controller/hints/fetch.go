package hints

import (
	"context"
	"errors"
	"fmt"

	"github.com/overlaykit/hintd/src/hintd/entity"
	hintderrors "github.com/overlaykit/hintd/src/hintd/internal/errors"
	hintdprotocol "github.com/overlaykit/hintd/src/hintd/internal/protocol"
	"github.com/overlaykit/hintd/src/hintd/mapper"
	"go.lsp.dev/protocol"
)

// maybeRefresh fetches hints for the document if the session currently has
// them enabled. The flag is evaluated here, at trigger time, and not again
// when the response arrives.
func (c *controller) maybeRefresh(ctx context.Context, doc protocol.TextDocumentIdentifier) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return err
	}

	if !s.HintsEnabled {
		return nil
	}

	return c.fetch(ctx, doc)
}

// fetch issues an inlay hint request covering the whole document and applies
// the resulting batch to the overlay. Documents without a live analysis
// connection silently get no hints.
func (c *controller) fetch(ctx context.Context, doc protocol.TextDocumentIdentifier) error {
	item, err := c.docState.GetTextDocument(ctx, doc)
	if err != nil {
		var notFound *hintderrors.DocumentNotFoundError
		if errors.As(err, &notFound) {
			// Untracked document, nothing to fetch.
			return nil
		}
		return fmt.Errorf("reading document state: %w", err)
	}

	root, err := c.docState.WorkspaceRoot(ctx, doc)
	if err != nil {
		return fmt.Errorf("reading document workspace root: %w", err)
	}

	docRange, err := mapper.ContentToWholeDocumentRange(item.Text)
	if err != nil {
		return fmt.Errorf("computing document range: %w", err)
	}

	params := &hintdprotocol.InlayHintParams{
		TextDocument: doc,
		Range:        docRange,
	}

	// The response outlives the triggering request, so it is handled on a
	// context that carries only the session identity.
	cbCtx := context.WithValue(context.Background(), entity.SessionContextKey, ctx.Value(entity.SessionContextKey))
	snapshot := item.Text
	err = c.analysisGateway.InlayHints(ctx, root, params, func(result []hintdprotocol.InlayHint, err error) {
		c.handleHintsResponse(cbCtx, doc, snapshot, result, err)
	})
	if hintderrors.IsNoConnection(err) {
		c.logger.Debugw("skipping hint fetch without analysis connection", "document", doc.URI)
		c.stats.Counter("skipped_no_connection").Inc(1)
		return nil
	}
	return err
}

// handleHintsResponse applies a hint batch to the overlay. Request errors and
// empty results are ignored, leaving the previous annotations in place. The
// enabled flag is not re-checked: a response racing a hide request still
// lands, matching trigger-time evaluation.
func (c *controller) handleHintsResponse(ctx context.Context, doc protocol.TextDocumentIdentifier, snapshot string, result []hintdprotocol.InlayHint, err error) {
	if err != nil || len(result) == 0 {
		c.logger.Debugw("ignoring hint response", "document", doc.URI, "hints", len(result), "error", err)
		c.stats.Counter("fetch_errors").Inc(1)
		return
	}

	batch := c.shiftStale(ctx, doc, snapshot, mapper.HintsToAnnotations(result))
	if err := c.overlay.Apply(ctx, doc.URI, batch); err != nil {
		c.logger.Errorw("applying hint batch", "document", doc.URI, "error", err)
		return
	}
	c.stats.Counter("batches_applied").Inc(1)
}

// shiftStale moves annotation anchors through the edits made while the fetch
// was in flight. Anchors inside deleted regions are dropped and the remaining
// annotations renumbered. Documents closed in the meantime pass through
// unshifted; the overlay will reject them downstream.
func (c *controller) shiftStale(ctx context.Context, doc protocol.TextDocumentIdentifier, snapshot string, batch []entity.Annotation) []entity.Annotation {
	current, err := c.docState.GetTextDocument(ctx, doc)
	if err != nil || current.Text == snapshot {
		return batch
	}

	shifter := newPositionShifter(snapshot, current.Text)
	shifted := make([]entity.Annotation, 0, len(batch))
	for _, a := range batch {
		pos, deleted, err := shifter.Shift(protocol.Position{Line: a.Line, Character: a.Character})
		if err != nil || deleted {
			continue
		}
		a.ID = len(shifted) + 1
		a.Line = pos.Line
		a.Character = pos.Character
		shifted = append(shifted, a)
	}

	if len(shifted) != len(batch) {
		c.logger.Debugw("dropped annotations in edited regions", "document", doc.URI, "dropped", len(batch)-len(shifted))
	}
	return shifted
}
