package hints

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	analysisclient "github.com/overlaykit/hintd/src/hintd/gateway/analysis-client"
	"github.com/overlaykit/hintd/src/hintd/entity"
	"github.com/overlaykit/hintd/src/hintd/factory"
	hintderrors "github.com/overlaykit/hintd/src/hintd/internal/errors"
	hintdprotocol "github.com/overlaykit/hintd/src/hintd/internal/protocol"
	"go.lsp.dev/protocol"
	"go.uber.org/mock/gomock"
)

const _workspaceRoot = "/my/path"

var _doc = protocol.TextDocumentIdentifier{URI: "file:///my/path/file.lua"}

func TestMaybeRefresh(t *testing.T) {
	sampleHints := []hintdprotocol.InlayHint{
		{
			Position: protocol.Position{Line: 5, Character: 3},
			Label:    "x",
			Kind:     hintdprotocol.InlayHintKindParameter,
		},
		{
			Position: protocol.Position{Line: 5, Character: 10},
			Label:    "number",
			Kind:     hintdprotocol.InlayHintKindType,
		},
	}

	t.Run("disabled session fetches nothing", func(t *testing.T) {
		s := &entity.Session{UUID: factory.UUID(), HintsEnabled: false}
		env := getTestEnv(t, s)

		assert.NoError(t, env.controller.maybeRefresh(env.ctx, _doc))
	})

	t.Run("enabled session applies response", func(t *testing.T) {
		s := &entity.Session{UUID: factory.UUID(), HintsEnabled: true}
		env := getTestEnv(t, s)

		env.docState.EXPECT().GetTextDocument(gomock.Any(), _doc).Return(protocol.TextDocumentItem{
			URI:  _doc.URI,
			Text: "local result = add(1, 2)\n",
		}, nil).Times(2)
		env.docState.EXPECT().WorkspaceRoot(gomock.Any(), _doc).Return(_workspaceRoot, nil)
		env.analysisGateway.EXPECT().InlayHints(gomock.Any(), _workspaceRoot, gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx interface{}, root string, params *hintdprotocol.InlayHintParams, cb analysisclient.HintsCallback) error {
				assert.Equal(t, _doc, params.TextDocument)
				assert.Equal(t, protocol.Position{Line: 0, Character: 0}, params.Range.Start)
				assert.Equal(t, protocol.Position{Line: 1, Character: 0}, params.Range.End)
				cb(sampleHints, nil)
				return nil
			})
		env.overlay.EXPECT().Apply(gomock.Any(), _doc.URI, gomock.Any()).DoAndReturn(
			func(ctx interface{}, doc interface{}, batch []entity.Annotation) error {
				require.Len(t, batch, 2)
				assert.Equal(t, ": x", batch[0].Text)
				assert.Equal(t, hintdprotocol.AnnotationInlineBefore, batch[0].Mode)
				assert.Equal(t, "number: ", batch[1].Text)
				assert.Equal(t, hintdprotocol.AnnotationInlineAfter, batch[1].Mode)
				return nil
			})

		assert.NoError(t, env.controller.maybeRefresh(env.ctx, _doc))
	})

	t.Run("untracked document skipped", func(t *testing.T) {
		s := &entity.Session{UUID: factory.UUID(), HintsEnabled: true}
		env := getTestEnv(t, s)

		env.docState.EXPECT().GetTextDocument(gomock.Any(), _doc).Return(
			protocol.TextDocumentItem{}, &hintderrors.DocumentNotFoundError{Document: _doc})

		assert.NoError(t, env.controller.maybeRefresh(env.ctx, _doc))
	})

	t.Run("missing connection skipped silently", func(t *testing.T) {
		s := &entity.Session{UUID: factory.UUID(), HintsEnabled: true}
		env := getTestEnv(t, s)

		env.docState.EXPECT().GetTextDocument(gomock.Any(), _doc).Return(protocol.TextDocumentItem{URI: _doc.URI}, nil)
		env.docState.EXPECT().WorkspaceRoot(gomock.Any(), _doc).Return(_workspaceRoot, nil)
		env.analysisGateway.EXPECT().InlayHints(gomock.Any(), _workspaceRoot, gomock.Any(), gomock.Any()).Return(hintderrors.NoConnectionError)

		assert.NoError(t, env.controller.maybeRefresh(env.ctx, _doc))
	})

	t.Run("document state error surfaced", func(t *testing.T) {
		s := &entity.Session{UUID: factory.UUID(), HintsEnabled: true}
		env := getTestEnv(t, s)

		env.docState.EXPECT().GetTextDocument(gomock.Any(), _doc).Return(
			protocol.TextDocumentItem{}, errors.New("repository failure"))

		assert.Error(t, env.controller.maybeRefresh(env.ctx, _doc))
	})
}

func TestHandleHintsResponse(t *testing.T) {
	sampleHints := []hintdprotocol.InlayHint{
		{Position: protocol.Position{Line: 1, Character: 1}, Label: "x", Kind: hintdprotocol.InlayHintKindParameter},
	}

	sampleText := "local y\nlocal x = 1\n"

	t.Run("error response ignored", func(t *testing.T) {
		s := &entity.Session{UUID: factory.UUID(), HintsEnabled: true}
		env := getTestEnv(t, s)

		env.controller.handleHintsResponse(env.ctx, _doc, sampleText, nil, errors.New("request failure"))
	})

	t.Run("empty response ignored", func(t *testing.T) {
		s := &entity.Session{UUID: factory.UUID(), HintsEnabled: true}
		env := getTestEnv(t, s)

		env.controller.handleHintsResponse(env.ctx, _doc, sampleText, []hintdprotocol.InlayHint{}, nil)
	})

	t.Run("response after hide still applies", func(t *testing.T) {
		s := &entity.Session{UUID: factory.UUID(), HintsEnabled: false}
		env := getTestEnv(t, s)
		env.docState.EXPECT().GetTextDocument(gomock.Any(), _doc).Return(
			protocol.TextDocumentItem{URI: _doc.URI, Text: sampleText}, nil)
		env.overlay.EXPECT().Apply(gomock.Any(), _doc.URI, gomock.Any()).Return(nil)

		env.controller.handleHintsResponse(env.ctx, _doc, sampleText, sampleHints, nil)
	})

	t.Run("stale response shifted to edited text", func(t *testing.T) {
		s := &entity.Session{UUID: factory.UUID(), HintsEnabled: true}
		env := getTestEnv(t, s)
		env.docState.EXPECT().GetTextDocument(gomock.Any(), _doc).Return(
			protocol.TextDocumentItem{URI: _doc.URI, Text: "-- header\n" + sampleText}, nil)
		env.overlay.EXPECT().Apply(gomock.Any(), _doc.URI, gomock.Any()).DoAndReturn(
			func(ctx interface{}, doc interface{}, batch []entity.Annotation) error {
				require.Len(t, batch, 1)
				// One line was inserted above the anchor while the fetch was in flight.
				assert.Equal(t, uint32(1), batch[0].Line)
				return nil
			})

		env.controller.handleHintsResponse(env.ctx, _doc, sampleText, sampleHints, nil)
	})

	t.Run("anchor in deleted region dropped", func(t *testing.T) {
		s := &entity.Session{UUID: factory.UUID(), HintsEnabled: true}
		env := getTestEnv(t, s)

		// Anchored on the second line, which is removed while the fetch is in flight.
		secondLineHints := []hintdprotocol.InlayHint{
			{Position: protocol.Position{Line: 2, Character: 1}, Label: "x", Kind: hintdprotocol.InlayHintKindParameter},
		}
		env.docState.EXPECT().GetTextDocument(gomock.Any(), _doc).Return(
			protocol.TextDocumentItem{URI: _doc.URI, Text: "local y\n"}, nil)
		env.overlay.EXPECT().Apply(gomock.Any(), _doc.URI, gomock.Len(0)).Return(nil)

		env.controller.handleHintsResponse(env.ctx, _doc, sampleText, secondLineHints, nil)
	})

	t.Run("overlay failure logged only", func(t *testing.T) {
		s := &entity.Session{UUID: factory.UUID(), HintsEnabled: true}
		env := getTestEnv(t, s)
		env.docState.EXPECT().GetTextDocument(gomock.Any(), _doc).Return(
			protocol.TextDocumentItem{URI: _doc.URI, Text: sampleText}, nil)
		env.overlay.EXPECT().Apply(gomock.Any(), _doc.URI, gomock.Any()).Return(errors.New("notify failure"))

		env.controller.handleHintsResponse(env.ctx, _doc, sampleText, sampleHints, nil)
	})
}
