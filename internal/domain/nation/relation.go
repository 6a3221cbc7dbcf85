package nation

// Relation is the diplomatic stance of one nation towards another
type Relation int

const (
	RelationNone        Relation = 0
	RelationAlliance    Relation = 1
	RelationPassage     Relation = 2
	RelationTrade       Relation = 3
	RelationColonialWar Relation = 4
	RelationWar         Relation = 5
)

// FeePerMille returns the transfer/transaction fee charged under the relation,
// in thousandths. Only alliance, passage and trade give a reduced fee.
func (r Relation) FeePerMille() int {
	switch r {
	case RelationAlliance:
		return 0
	case RelationPassage:
		return 25
	case RelationTrade:
		return 50
	default:
		return 1000
	}
}

// IsWar reports whether units of the two nations are enemies
func (r Relation) IsWar() bool {
	return r == RelationWar || r == RelationColonialWar
}

func (r Relation) String() string {
	switch r {
	case RelationAlliance:
		return "alliance"
	case RelationPassage:
		return "passage"
	case RelationTrade:
		return "trade"
	case RelationColonialWar:
		return "colonial war"
	case RelationWar:
		return "war"
	default:
		return "none"
	}
}
