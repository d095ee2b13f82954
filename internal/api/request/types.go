package request

// CreateGuestRequest is the request body for creating a guest coach
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a coach
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RosterPlayer is one entry of a custom roster
type RosterPlayer struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	Libero bool   `json:"libero,omitempty"`
}

// CreateLineupRequest is the request body for creating a lineup.
// Every field is optional.
type CreateLineupRequest struct {
	Name             string         `json:"name,omitempty"`
	Roster           []RosterPlayer `json:"roster,omitempty"`
	SubstitutionSlot string         `json:"substitution_slot,omitempty"`
}

// PlaceRequest is the request body for putting a player on court.
// Without a slot the player is dropped onto the first free slot.
type PlaceRequest struct {
	Number int  `json:"number"`
	Slot   *int `json:"slot,omitempty"`
}

// MoveRequest is the request body for moving an on-court player
type MoveRequest struct {
	Slot *int `json:"slot"`
}

// SubstituteRequest is the request body for a regular substitution
type SubstituteRequest struct {
	Outgoing int `json:"outgoing"`
	Incoming int `json:"incoming"`
}

// LiberoRequest is the request body for bringing the libero on
type LiberoRequest struct {
	Libero int `json:"libero"`
	Target int `json:"target"`
}

// RenameRequest is the request body for renaming a player
type RenameRequest struct {
	Name string `json:"name"`
}

// ActionRequest is a free-text command against a player ("sub" or "name")
type ActionRequest struct {
	Action string `json:"action"`
	Value  string `json:"value"`
}
