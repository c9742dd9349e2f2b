// Package seasonevents defines the topics and payloads published by the season module.
package seasonevents

import "time"

const (
	// SeasonUpdatedV1 is published after any committed change to a season.
	SeasonUpdatedV1 = "season.updated.v1"
	// SeasonDeletedV1 is published after a season is removed.
	SeasonDeletedV1 = "season.deleted.v1"
	// MaskRevealedV1 is published when a mask's celebrity is revealed.
	MaskRevealedV1 = "season.mask.revealed.v1"
	// StateImportedV1 is published after an import replaced or extended the stored state.
	StateImportedV1 = "season.state.imported.v1"
)

// SeasonUpdatedPayloadV1 names the season and the command that changed it.
type SeasonUpdatedPayloadV1 struct {
	SeasonID  string    `json:"season_id"`
	Operation string    `json:"operation"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SeasonDeletedPayloadV1 names the removed season.
type SeasonDeletedPayloadV1 struct {
	SeasonID  string    `json:"season_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

// MaskRevealedPayloadV1 carries the revealed mask.
type MaskRevealedPayloadV1 struct {
	SeasonID   string    `json:"season_id"`
	MaskID     string    `json:"mask_id"`
	MaskName   string    `json:"mask_name"`
	Celebrity  string    `json:"celebrity"`
	RevealedAt time.Time `json:"revealed_at"`
}

// StateImportedPayloadV1 lists the seasons present after an import.
type StateImportedPayloadV1 struct {
	SeasonIDs  []string  `json:"season_ids"`
	Replaced   bool      `json:"replaced"`
	ImportedAt time.Time `json:"imported_at"`
}
