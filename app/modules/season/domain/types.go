package seasondomain

// PlayerID identifies a player across every season.
type PlayerID string

// SeasonID identifies a season.
type SeasonID string

// ShowID identifies a show (episode) within a season.
type ShowID string

// MaskID identifies a mask within a season.
type MaskID string

// CounterBetID identifies a counter-bet within a season.
type CounterBetID string

// Player is a participant in the global roster.
type Player struct {
	ID       PlayerID `json:"id"`
	Name     string   `json:"name"`
	Color    string   `json:"color"`
	ImageURL string   `json:"imageUrl,omitempty"`
}

// Show is one episode of a season. EpisodeNumber is the time axis used by scoring.
type Show struct {
	ID            ShowID `json:"id"`
	Name          string `json:"name"`
	EpisodeNumber int    `json:"episodeNumber"`
}

// Tip is a single guess for the identity behind a mask.
// CreatedAt is a unix timestamp in milliseconds.
type Tip struct {
	CelebrityName string `json:"celebrityName"`
	ShowID        ShowID `json:"showId"`
	CreatedAt     int64  `json:"createdAt"`
	IsFinal       bool   `json:"isFinal,omitempty"`
}

// Mask is a hidden identity that players try to guess.
type Mask struct {
	ID                MaskID  `json:"id"`
	Name              string  `json:"name"`
	ImageURL          string  `json:"imageUrl,omitempty"`
	Tips              TipBook `json:"tips"`
	IsRevealed        bool    `json:"isRevealed"`
	RevealedCelebrity string  `json:"revealedCelebrity,omitempty"`
}

// CounterBet is a wager by one player that another player's tip is wrong.
// TargetTipIndex is a positional snapshot into the target's tip sequence at placement time.
type CounterBet struct {
	ID             CounterBetID `json:"id"`
	ShowID         ShowID       `json:"showId"`
	MaskID         MaskID       `json:"maskId"`
	BettorID       PlayerID     `json:"bettorPlayerId"`
	TargetID       PlayerID     `json:"targetPlayerId"`
	TargetTipIndex int          `json:"targetTipIndex"`
}

// Season is the unit of play: participants, masks, shows and counter-bets.
type Season struct {
	ID           SeasonID     `json:"id"`
	Name         string       `json:"seasonName"`
	ImageURL     string       `json:"imageUrl,omitempty"`
	PlayerIDs    []PlayerID   `json:"playerIds"`
	Masks        []Mask       `json:"masks"`
	Shows        []Show       `json:"shows"`
	ActiveShowID *ShowID      `json:"activeShowId"`
	CounterBets  []CounterBet `json:"counterBets"`
}

// AppState is the full exportable game state.
type AppState struct {
	Players []Player `json:"players"`
	Seasons []Season `json:"seasons"`
}

// NewSeason returns an empty season with no shows.
func NewSeason(id SeasonID, name, imageURL string) Season {
	return Season{
		ID:          id,
		Name:        name,
		ImageURL:    imageURL,
		PlayerIDs:   []PlayerID{},
		Masks:       []Mask{},
		Shows:       []Show{},
		CounterBets: []CounterBet{},
	}
}

// Mask returns the mask with the given id.
func (s Season) Mask(id MaskID) (Mask, bool) {
	for _, m := range s.Masks {
		if m.ID == id {
			return m, true
		}
	}
	return Mask{}, false
}

// Show returns the show with the given id.
func (s Season) Show(id ShowID) (Show, bool) {
	for _, sh := range s.Shows {
		if sh.ID == id {
			return sh, true
		}
	}
	return Show{}, false
}

// HasPlayer reports whether the player participates in the season.
func (s Season) HasPlayer(id PlayerID) bool {
	for _, pid := range s.PlayerIDs {
		if pid == id {
			return true
		}
	}
	return false
}

// ActiveShow returns the currently active show id, or "" when none is selected.
func (s Season) ActiveShow() ShowID {
	if s.ActiveShowID == nil {
		return ""
	}
	return *s.ActiveShowID
}

// clone copies every slice so operations can modify the result without aliasing the receiver.
func (s Season) clone() Season {
	out := s
	out.PlayerIDs = append([]PlayerID{}, s.PlayerIDs...)
	out.Masks = append([]Mask{}, s.Masks...)
	out.Shows = append([]Show{}, s.Shows...)
	out.CounterBets = append([]CounterBet{}, s.CounterBets...)
	if s.ActiveShowID != nil {
		id := *s.ActiveShowID
		out.ActiveShowID = &id
	}
	return out
}
