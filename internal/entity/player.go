package entity

import "encoding/json"

const (
	// Anonymous is the identity reported for callers the resolver could not identify.
	Anonymous = "anonymous"

	RoleSpectator = "spectator"
)

// Username is an identity string that encodes as null when empty.
type Username string

func (that Username) MarshalJSON() ([]byte, error) {
	if that == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(that))
}

func (that *Username) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*that = ""
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*that = Username(raw)
	return nil
}

// Players holds the two mark slots of a session. Slots are filled in arrival order, X before O.
type Players struct {
	X Username `json:"X"`
	O Username `json:"O"`
}

// MarkOf - returns the mark occupied by the identity.
func (that Players) MarkOf(identity string) (Mark, bool) {
	switch {
	case identity == "":
		return EmptyCell, false
	case that.X == Username(identity):
		return PlayerX, true
	case that.O == Username(identity):
		return PlayerO, true
	default:
		return EmptyCell, false
	}
}

// Occupant - returns the identity sitting on the mark slot.
func (that Players) Occupant(mark Mark) Username {
	switch mark {
	case PlayerX:
		return that.X
	case PlayerO:
		return that.O
	default:
		return ""
	}
}

func (that Players) IsFull() bool {
	return that.X != "" && that.O != ""
}

// Assign - seats the identity on the first free slot. An identity that already holds a slot keeps it.
func (that *Players) Assign(identity string) (Mark, bool) {
	if mark, ok := that.MarkOf(identity); ok {
		return mark, false
	}

	if identity == "" {
		return EmptyCell, false
	}

	switch {
	case that.X == "":
		that.X = Username(identity)
		return PlayerX, true
	case that.O == "":
		that.O = Username(identity)
		return PlayerO, true
	default:
		return EmptyCell, false
	}
}

// Role - returns the role name for the identity: its mark or spectator.
func (that Players) Role(identity string) string {
	if mark, ok := that.MarkOf(identity); ok {
		return string(mark)
	}
	return RoleSpectator
}
