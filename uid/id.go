// Package uid defines the 128-bit identifier type shared by applications,
// windows, and pixel buffers.
package uid

import (
	"encoding/json"

	"github.com/google/uuid"
)

// ID is a 128-bit identifier assigned at creation and never re-used.
type ID struct {
	u uuid.UUID
}

// Nil is the distinguished value reserved for unaddressed messages.
var Nil = ID{}

// New assigns a fresh, random identifier.
func New() ID {
	return ID{u: uuid.New()}
}

// IsNil reports whether id is the reserved Nil value.
func (id ID) IsNil() bool {
	return id.u == uuid.Nil
}

func (id ID) String() string {
	return id.u.String()
}

// MarshalJSON encodes id as its canonical UUID string form.
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.u.String())
}

// UnmarshalJSON decodes id from its canonical UUID string form.
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		id.u = uuid.Nil
		return nil
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	id.u = parsed
	return nil
}
