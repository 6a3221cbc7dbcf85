package orders

import "github.com/ShakaofCarthage/empire-engine/internal/domain/shared"

// TurnState is the mutable state orders of one batch share. It is created
// with the batch and discarded with it.
type TurnState struct {
	swapped    map[int]bool
	tradeFirst map[int]shared.NationID
}

// NewTurnState creates empty turn state
func NewTurnState() *TurnState {
	return &TurnState{
		swapped:    make(map[int]bool),
		tradeFirst: make(map[int]shared.NationID),
	}
}

// Swapped reports whether a battalion was already exchanged this turn
func (s *TurnState) Swapped(battalionID int) bool {
	return s.swapped[battalionID]
}

// MarkSwapped records exchanged battalions
func (s *TurnState) MarkSwapped(battalionIDs ...int) {
	for _, id := range battalionIDs {
		s.swapped[id] = true
	}
}

// IsFirstTrader reports whether the nation trades at the city as the first
// trader of the turn: nobody traded there yet, or the nation itself did.
func (s *TurnState) IsFirstTrader(city int, n shared.NationID) bool {
	first, ok := s.tradeFirst[city]
	return !ok || first == n
}

// ClaimTrade records a completed trade; only the first one sticks
func (s *TurnState) ClaimTrade(city int, n shared.NationID) {
	if _, ok := s.tradeFirst[city]; !ok {
		s.tradeFirst[city] = n
	}
}
