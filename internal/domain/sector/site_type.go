package sector

import "fmt"

// SiteType is the production site built on a sector
type SiteType int

const (
	SiteNone            SiteType = 0
	SiteEstate          SiteType = 1
	SiteFactory         SiteType = 2
	SiteWeavingMill     SiteType = 3
	SiteMint            SiteType = 4
	SiteMine            SiteType = 5
	SiteQuarry          SiteType = 6
	SiteLumberCamp      SiteType = 7
	SiteVineyard        SiteType = 8
	SiteSheepFarm       SiteType = 9
	SiteHorseFarm       SiteType = 10
	SitePlantation      SiteType = 11
	SiteBarrack         SiteType = 12
	SiteBarrackShipyard SiteType = 13

	SiteLast = SiteBarrackShipyard
)

var siteNames = map[SiteType]string{
	SiteNone:            "none",
	SiteEstate:          "estate",
	SiteFactory:         "factory",
	SiteWeavingMill:     "weaving mill",
	SiteMint:            "mint",
	SiteMine:            "mine",
	SiteQuarry:          "quarry",
	SiteLumberCamp:      "lumber camp",
	SiteVineyard:        "vineyard",
	SiteSheepFarm:       "sheep farm",
	SiteHorseFarm:       "horse breeding farm",
	SitePlantation:      "plantation",
	SiteBarrack:         "barrack",
	SiteBarrackShipyard: "barrack and shipyard",
}

// IsValid checks the site id range
func (t SiteType) IsValid() bool {
	return t >= SiteNone && t <= SiteLast
}

func (t SiteType) String() string {
	if name, ok := siteNames[t]; ok {
		return name
	}
	return fmt.Sprintf("site-%d", int(t))
}
