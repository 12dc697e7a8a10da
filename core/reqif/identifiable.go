package reqif

import (
	"time"

	"github.com/google/uuid"
)

// Identifiable carries the identity and descriptive metadata shared by every
// entity in a document.
type Identifiable struct {
	Identifier    string
	LongName      string
	LastChange    time.Time // zero when unset
	Description   string
	AlternativeID *AlternativeID
}

// Identity returns the receiver; embedding types use it to expose their
// metadata through the Entity interface.
func (i *Identifiable) Identity() *Identifiable { return i }

// AlternativeID is an identifier assigned by another tool.
type AlternativeID struct {
	Identifier string
}

// Entity is implemented by everything that embeds Identifiable.
type Entity interface {
	Identity() *Identifiable
}

// NewIdentifier returns a fresh identifier in the conventional "_<uuid>" form.
func NewIdentifier() string {
	return "_" + uuid.NewString()
}
