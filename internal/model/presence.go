package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Presence is a tri-state nutrient flag. Unknown means the nutrient was
// never looked up for the food, which is different from Absent.
type Presence int

const (
	PresenceUnknown Presence = iota
	PresenceAbsent
	PresencePresent
)

// PresenceOf converts a definite boolean into a Presence.
func PresenceOf(present bool) Presence {
	if present {
		return PresencePresent
	}
	return PresenceAbsent
}

func (p Presence) Known() bool {
	return p != PresenceUnknown
}

func (p Presence) IsPresent() bool {
	return p == PresencePresent
}

func (p Presence) String() string {
	switch p {
	case PresencePresent:
		return "present"
	case PresenceAbsent:
		return "absent"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes Unknown as null so clients see true/false/null.
func (p Presence) MarshalJSON() ([]byte, error) {
	switch p {
	case PresencePresent:
		return []byte("true"), nil
	case PresenceAbsent:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

func (p *Presence) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = PresenceUnknown
		return nil
	}

	var b bool
	err := json.Unmarshal(data, &b)
	if err != nil {
		return fmt.Errorf("presence must be true, false or null: %w", err)
	}
	*p = PresenceOf(b)
	return nil
}
