package production

import "github.com/ShakaofCarthage/empire-engine/internal/domain/shared"

// Zone is the climate band of a sector
type Zone int

const (
	ZoneArctic Zone = iota + 1
	ZoneCentral
	ZoneMediterranean
	ZoneTropical
)

// Europe rows below arcticLimit are arctic, rows from mediterraneanLimit on
// are mediterranean.
const (
	arcticLimit        = 10
	mediterraneanLimit = 35
)

// ZoneOf returns the climate zone of a position
func ZoneOf(pos shared.Position) Zone {
	if !pos.Region.IsEurope() {
		return ZoneTropical
	}
	switch {
	case pos.Y < arcticLimit:
		return ZoneArctic
	case pos.Y >= mediterraneanLimit:
		return ZoneMediterranean
	default:
		return ZoneCentral
	}
}

// ClimateFactor scales weather dependent yields by zone and month (0 = January)
func ClimateFactor(pos shared.Position, month int) float64 {
	switch ZoneOf(pos) {
	case ZoneArctic:
		switch month {
		case 10, 11, 0, 1, 2:
			return 0.5
		case 3, 4, 8, 9:
			return 0.75
		}
	case ZoneCentral:
		switch month {
		case 11, 0, 1:
			return 0.5
		case 2, 3, 9, 10:
			return 0.75
		}
	case ZoneTropical:
		switch month {
		case 5, 6, 7, 8:
			return 0.75
		}
	}
	return 1.0
}
