package entity

import (
	"github.com/overlaykit/hintd/src/hintd/internal/protocol"
)

// Annotation is a rendered overlay unit owned by the overlay store.
// IDs are sequential from 1 within a batch; anchor coordinates are 0-based.
type Annotation struct {
	ID        int
	Text      string
	Line      uint32
	Character uint32
	Mode      protocol.AnnotationMode
}
