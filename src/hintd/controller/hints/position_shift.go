package hints

import (
	"errors"

	"github.com/sergi/go-diff/diffmatchpatch"
	hintdprotocol "github.com/overlaykit/hintd/src/hintd/internal/protocol"
	"go.lsp.dev/protocol"
)

// positionShifter maps positions from a document snapshot to the current
// version of the same document.
type positionShifter struct {
	modified      bool
	baseMapper    *hintdprotocol.TextOffsetMapper
	currentMapper *hintdprotocol.TextOffsetMapper
	diffs         []diffmatchpatch.Diff
}

// newPositionShifter precomputes the diff between a snapshot and the current text.
func newPositionShifter(baseText, currentText string) *positionShifter {
	if baseText == currentText {
		// Skip setup for documents with identical content.
		return &positionShifter{modified: false}
	}

	dmp := diffmatchpatch.New()
	return &positionShifter{
		modified:      true,
		baseMapper:    hintdprotocol.NewTextOffsetMapper([]byte(baseText)),
		currentMapper: hintdprotocol.NewTextOffsetMapper([]byte(currentText)),
		diffs:         dmp.DiffMain(baseText, currentText, false),
	}
}

// Shift maps a snapshot position to the equivalent position in the current
// text. The boolean reports whether the position fell inside a deleted region.
func (s *positionShifter) Shift(position protocol.Position) (protocol.Position, bool, error) {
	if !s.modified {
		return position, false, nil
	}

	if s.baseMapper == nil || s.currentMapper == nil {
		return position, false, errors.New("position shifter not initialized")
	}

	initialOffset, err := s.baseMapper.PositionOffset(position)
	if err != nil {
		return position, false, err
	}

	shiftedOffset, deleted := diffShiftIndex(s.diffs, initialOffset)

	result, err := s.currentMapper.OffsetPosition(shiftedOffset)
	if err != nil {
		return position, deleted, err
	}

	return result, deleted, nil
}

// diffShiftIndex returns the offset in the target text after applying the diffs.
// Lift and shift from the diffmatchpatch library, with an added boolean return
// value indicating whether the offset fell inside a deletion.
// Source: https://github.com/sergi/go-diff/blob/facec63e78161d6d31a9c552a679e2287e925949/diffmatchpatch/diff.go#L1090
func diffShiftIndex(diffs []diffmatchpatch.Diff, loc int) (int, bool) {
	chars1 := 0
	chars2 := 0
	lastChars1 := 0
	lastChars2 := 0
	lastDiff := diffmatchpatch.Diff{}
	for i := 0; i < len(diffs); i++ {
		aDiff := diffs[i]
		if aDiff.Type != diffmatchpatch.DiffInsert {
			// Equality or deletion.
			chars1 += len(aDiff.Text)
		}
		if aDiff.Type != diffmatchpatch.DiffDelete {
			// Equality or insertion.
			chars2 += len(aDiff.Text)
		}
		if chars1 > loc {
			// Overshot the location.
			lastDiff = aDiff
			break
		}
		lastChars1 = chars1
		lastChars2 = chars2
	}
	if lastDiff.Type == diffmatchpatch.DiffDelete {
		// The location was deleted.
		return lastChars2, true
	}
	// Add the remaining character length.
	return lastChars2 + (loc - lastChars1), false
}
