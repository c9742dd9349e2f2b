package seasondomain

import "errors"

// Rule violations returned by season operations.
var (
	ErrMaxTipsReached       = errors.New("maximum of 3 tips reached for this player and mask")
	ErrFinalTipLocked       = errors.New("a final tip was already submitted for this mask")
	ErrFinalTipNotRemovable = errors.New("a final tip cannot be removed")
	ErrNoTips               = errors.New("player has no tips for this mask")
	ErrNoActiveShow         = errors.New("no active show selected")
	ErrSelfCounterBet       = errors.New("a player cannot bet against themselves")
	ErrDuplicateCounterBet  = errors.New("counter-bet against this player for this mask already placed")
	ErrNoTargetTips         = errors.New("target player has no tips for this mask")
	ErrEmptyName            = errors.New("name must not be empty")

	ErrSeasonNotFound     = errors.New("season not found")
	ErrMaskNotFound       = errors.New("mask not found")
	ErrShowNotFound       = errors.New("show not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrCounterBetNotFound = errors.New("counter-bet not found")
	ErrPlayerNotInSeason  = errors.New("player does not participate in this season")

	ErrInvalidSeason   = errors.New("invalid season document")
	ErrInvalidAppState = errors.New("invalid app state document")
)

// IsRuleViolation reports whether err is a game-rule rejection rather than a missing entity or
// an infrastructure failure.
func IsRuleViolation(err error) bool {
	for _, target := range []error{
		ErrMaxTipsReached, ErrFinalTipLocked, ErrFinalTipNotRemovable, ErrNoTips,
		ErrNoActiveShow, ErrSelfCounterBet, ErrDuplicateCounterBet, ErrNoTargetTips,
		ErrEmptyName, ErrPlayerNotInSeason,
		ErrInvalidSeason, ErrInvalidAppState,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err names a missing entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSeasonNotFound) ||
		errors.Is(err, ErrMaskNotFound) ||
		errors.Is(err, ErrShowNotFound) ||
		errors.Is(err, ErrPlayerNotFound) ||
		errors.Is(err, ErrCounterBetNotFound)
}
