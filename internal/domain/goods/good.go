package goods

import (
	"fmt"
	"strconv"
	"strings"
)

// Good is a resource type tracked by the ledger
type Good int

const (
	GoodMoney    Good = 1
	GoodInpt     Good = 2 // industrial points (EcPt)
	GoodFood     Good = 3
	GoodPeople   Good = 4
	GoodWood     Good = 5
	GoodStone    Good = 6
	GoodOre      Good = 7
	GoodGems     Good = 8
	GoodHorse    Good = 9
	GoodFabric   Good = 10
	GoodWool     Good = 11
	GoodPrecious Good = 12
	GoodWine     Good = 13
	GoodColonial Good = 14
	GoodAP       Good = 15 // administrative points
	GoodCP       Good = 16 // command points

	GoodFirst = GoodMoney
	GoodLast  = GoodCP
)

var goodNames = map[Good]string{
	GoodMoney:    "money",
	GoodInpt:     "inpt",
	GoodFood:     "food",
	GoodPeople:   "people",
	GoodWood:     "wood",
	GoodStone:    "stone",
	GoodOre:      "ore",
	GoodGems:     "gems",
	GoodHorse:    "horse",
	GoodFabric:   "fabric",
	GoodWool:     "wool",
	GoodPrecious: "precious",
	GoodWine:     "wine",
	GoodColonial: "colonial",
	GoodAP:       "ap",
	GoodCP:       "cp",
}

// AllGoods returns every good in ascending id order
func AllGoods() []Good {
	all := make([]Good, 0, int(GoodLast))
	for g := GoodFirst; g <= GoodLast; g++ {
		all = append(all, g)
	}
	return all
}

// IsValid checks if the good id is known
func (g Good) IsValid() bool {
	return g >= GoodFirst && g <= GoodLast
}

// IsTradable reports whether the good may be bought or sold at a trade city
// or moved between warehouses, ships and trains.
func (g Good) IsTradable() bool {
	switch g {
	case GoodMoney, GoodPeople, GoodAP, GoodCP:
		return false
	default:
		return g.IsValid()
	}
}

// String returns the lowercase key used in reports
func (g Good) String() string {
	if name, ok := goodNames[g]; ok {
		return name
	}
	return fmt.Sprintf("good-%d", int(g))
}

// ParseGood parses a report key or numeric id into a Good
func ParseGood(s string) (Good, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for g, name := range goodNames {
		if name == key {
			return g, nil
		}
	}
	if id, err := strconv.Atoi(key); err == nil && Good(id).IsValid() {
		return Good(id), nil
	}
	return 0, fmt.Errorf("invalid good: %s", s)
}
