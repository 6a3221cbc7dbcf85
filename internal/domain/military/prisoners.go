package military

import "github.com/ShakaofCarthage/empire-engine/internal/domain/shared"

// PrisonerRelation counts prisoners of war one nation holds of another
type PrisonerRelation struct {
	ID      int
	GameID  shared.GameID
	Captor  shared.NationID
	Captive shared.NationID
	Count   int
}
