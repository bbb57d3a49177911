package storage

// SessionData is the persisted state of a console session.
type SessionData struct {
	Name     string       `json:"name"`
	Position PositionData `json:"position"`
}

// PositionData is a block position in the world.
type PositionData struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// WorldData holds every block override of the world.
type WorldData struct {
	Overrides []BlockOverride `json:"overrides"`
}

// BlockOverride is a single block override for JSON serialization.
type BlockOverride struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Z     int `json:"z"`
	Block int `json:"block"`
	Meta  int `json:"meta,omitempty"`
}
