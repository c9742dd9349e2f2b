package seasondb

import (
	"time"

	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
	"github.com/uptrace/bun"
)

// Player is a row of the global roster. Position preserves roster order.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`

	ID        string    `bun:"id,pk"`
	Position  int       `bun:"position,notnull"`
	Name      string    `bun:"name,notnull"`
	Color     string    `bun:"color,notnull"`
	ImageURL  string    `bun:"image_url,nullzero"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Season stores one season document. Name is duplicated out of the document for listing.
type Season struct {
	bun.BaseModel `bun:"table:seasons,alias:s"`

	ID        string              `bun:"id,pk"`
	Position  int                 `bun:"position,notnull"`
	Name      string              `bun:"name,notnull"`
	Document  seasondomain.Season `bun:"document,type:jsonb,notnull"`
	CreatedAt time.Time           `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time           `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func playerRow(p seasondomain.Player, position int) *Player {
	return &Player{
		ID:       string(p.ID),
		Position: position,
		Name:     p.Name,
		Color:    p.Color,
		ImageURL: p.ImageURL,
	}
}

func (p *Player) toDomain() seasondomain.Player {
	return seasondomain.Player{
		ID:       seasondomain.PlayerID(p.ID),
		Name:     p.Name,
		Color:    p.Color,
		ImageURL: p.ImageURL,
	}
}

func seasonRow(s seasondomain.Season, position int) *Season {
	return &Season{
		ID:       string(s.ID),
		Position: position,
		Name:     s.Name,
		Document: s,
	}
}
