package persistence

import (
	"time"
)

// GameModel represents the games table
type GameModel struct {
	ID                   int  `gorm:"column:id;primaryKey"`
	Turn                 int  `gorm:"column:turn;not null;default:0"`
	StartYear            int  `gorm:"column:start_year;not null"`
	StartMonth           int  `gorm:"column:start_month;not null;default:0"`
	DoubleCosts          bool `gorm:"column:double_costs;default:false"`
	BoostedProduction    bool `gorm:"column:boosted_production;default:false"`
	BoostedTaxation      bool `gorm:"column:boosted_taxation;default:false"`
	FastPopulationGrowth bool `gorm:"column:fast_population_growth;default:false"`
	FastAppointment      bool `gorm:"column:fast_appointment;default:false"`
	Duration             int  `gorm:"column:duration;not null"`
}

func (GameModel) TableName() string {
	return "games"
}

// NationModel represents the nations table, one row per nation and game
type NationModel struct {
	GameID            int    `gorm:"column:game_id;primaryKey"`
	NationID          int    `gorm:"column:nation_id;primaryKey"`
	Code              string `gorm:"column:code;size:1;not null"`
	Name              string `gorm:"column:name;not null"`
	TaxRate           int    `gorm:"column:tax_rate;not null"`
	SphereOfInfluence string `gorm:"column:sphere_of_influence"`
	Alive             bool   `gorm:"column:alive"`
	VP                int    `gorm:"column:vp;default:0"`
	UserID            int    `gorm:"column:user_id;default:0"`
}

func (NationModel) TableName() string {
	return "nations"
}

// RelationModel represents the relations table. The stance is directional.
type RelationModel struct {
	GameID   int `gorm:"column:game_id;primaryKey"`
	FromID   int `gorm:"column:from_nation;primaryKey"`
	ToID     int `gorm:"column:to_nation;primaryKey"`
	Relation int `gorm:"column:relation;not null"`
}

func (RelationModel) TableName() string {
	return "relations"
}

// SectorModel represents the sectors table
type SectorModel struct {
	ID               int    `gorm:"column:id;primaryKey"`
	GameID           int    `gorm:"column:game_id;not null;index:idx_sector_position,priority:1"`
	Region           int    `gorm:"column:region;not null;index:idx_sector_position,priority:2"`
	X                int    `gorm:"column:x;not null;index:idx_sector_position,priority:3"`
	Y                int    `gorm:"column:y;not null;index:idx_sector_position,priority:4"`
	Owner            int    `gorm:"column:owner;not null;default:0"`
	PoliticalSphere  string `gorm:"column:political_sphere;size:1"`
	PopulationLevel  int    `gorm:"column:population_level;not null;default:0"`
	NaturalResource  int    `gorm:"column:natural_resource;default:0"`
	ProductionSite   int    `gorm:"column:production_site;default:0"`
	ConqueredCounter int    `gorm:"column:conquered_counter;default:0"`
	BuildProgress    int    `gorm:"column:build_progress;default:0"`
	Fort             int    `gorm:"column:fort;default:0"`
	PendingFort      int    `gorm:"column:pending_fort;default:0"`
	Payed            bool   `gorm:"column:payed;default:false"`
}

func (SectorModel) TableName() string {
	return "sectors"
}

// BrigadeModel represents the brigades table
type BrigadeModel struct {
	ID         int              `gorm:"column:id;primaryKey"`
	GameID     int              `gorm:"column:game_id;not null;index"`
	NationID   int              `gorm:"column:nation_id;not null"`
	Name       string           `gorm:"column:name"`
	Region     int              `gorm:"column:region;not null"`
	X          int              `gorm:"column:x;not null"`
	Y          int              `gorm:"column:y;not null"`
	CorpID     int              `gorm:"column:corp_id;default:0"`
	Battalions []BattalionModel `gorm:"foreignKey:BrigadeID;references:ID;constraint:OnDelete:CASCADE"`
}

func (BrigadeModel) TableName() string {
	return "brigades"
}

// BattalionModel represents the battalions table
type BattalionModel struct {
	ID          int  `gorm:"column:id;primaryKey"`
	BrigadeID   int  `gorm:"column:brigade_id;not null;index"`
	TypeID      int  `gorm:"column:type_id;not null"`
	Headcount   int  `gorm:"column:headcount;not null"`
	Ordinal     int  `gorm:"column:ordinal;not null"`
	Experience  int  `gorm:"column:experience;default:0"`
	NotSupplied bool `gorm:"column:not_supplied;default:false"`
}

func (BattalionModel) TableName() string {
	return "battalions"
}

// CommanderModel represents the commanders table
type CommanderModel struct {
	ID       int    `gorm:"column:id;primaryKey"`
	GameID   int    `gorm:"column:game_id;not null;index"`
	NationID int    `gorm:"column:nation_id;not null"`
	Name     string `gorm:"column:name"`
	Region   int    `gorm:"column:region;not null"`
	X        int    `gorm:"column:x;not null"`
	Y        int    `gorm:"column:y;not null"`
	Rank     int    `gorm:"column:rank;not null"`
	Strength int    `gorm:"column:strength;default:0"`
	Command  int    `gorm:"column:command;default:0"`
	Sick     int    `gorm:"column:sick;default:0"`
	Dead     bool   `gorm:"column:dead;default:false"`
	ArmyID   int    `gorm:"column:army_id;default:0"`
	CorpID   int    `gorm:"column:corp_id;default:0"`
	Unpaid   bool   `gorm:"column:unpaid;default:false"`
}

func (CommanderModel) TableName() string {
	return "commanders"
}

// ShipModel represents the ships table. Cargo is stored as a JSON object
// keyed by good id.
type ShipModel struct {
	ID        int    `gorm:"column:id;primaryKey"`
	GameID    int    `gorm:"column:game_id;not null;index"`
	NationID  int    `gorm:"column:nation_id;not null"`
	Name      string `gorm:"column:name"`
	TypeID    int    `gorm:"column:type_id;not null"`
	Region    int    `gorm:"column:region;not null"`
	X         int    `gorm:"column:x;not null"`
	Y         int    `gorm:"column:y;not null"`
	Marines   int    `gorm:"column:marines;default:0"`
	Condition int    `gorm:"column:condition"`
	Capacity  int    `gorm:"column:capacity;default:0"`
	Unpaid    bool   `gorm:"column:unpaid;default:false"`
	Cargo     string `gorm:"column:cargo;type:text"`
}

func (ShipModel) TableName() string {
	return "ships"
}

// BaggageTrainModel represents the baggage_trains table
type BaggageTrainModel struct {
	ID        int    `gorm:"column:id;primaryKey"`
	GameID    int    `gorm:"column:game_id;not null;index"`
	NationID  int    `gorm:"column:nation_id;not null"`
	Name      string `gorm:"column:name"`
	Region    int    `gorm:"column:region;not null"`
	X         int    `gorm:"column:x;not null"`
	Y         int    `gorm:"column:y;not null"`
	Condition int    `gorm:"column:condition"`
	Capacity  int    `gorm:"column:capacity;default:0"`
	Cargo     string `gorm:"column:cargo;type:text"`
}

func (BaggageTrainModel) TableName() string {
	return "baggage_trains"
}

// PrisonerModel represents the prisoners table
type PrisonerModel struct {
	ID      int `gorm:"column:id;primaryKey"`
	GameID  int `gorm:"column:game_id;not null;index"`
	Captor  int `gorm:"column:captor;not null"`
	Captive int `gorm:"column:captive;not null"`
	Count   int `gorm:"column:count;not null"`
}

func (PrisonerModel) TableName() string {
	return "prisoners"
}

// TradeCityModel represents the trade_cities table. Levels is a JSON object
// keyed by good id.
type TradeCityModel struct {
	ID     int    `gorm:"column:id;primaryKey"`
	GameID int    `gorm:"column:game_id;not null;index"`
	Name   string `gorm:"column:name;not null"`
	Region int    `gorm:"column:region;not null"`
	X      int    `gorm:"column:x;not null"`
	Y      int    `gorm:"column:y;not null"`
	Owner  int    `gorm:"column:owner;default:0"`
	Levels string `gorm:"column:levels;type:text"`
}

func (TradeCityModel) TableName() string {
	return "trade_cities"
}

// WarehouseModel represents one warehouse cell. Produced carries the goods
// produced into the cell during the last resolved turn.
type WarehouseModel struct {
	GameID   int `gorm:"column:game_id;primaryKey"`
	NationID int `gorm:"column:nation_id;primaryKey"`
	RegionID int `gorm:"column:region_id;primaryKey"`
	GoodID   int `gorm:"column:good_id;primaryKey"`
	Quantity int `gorm:"column:quantity;not null;default:0"`
	Produced int `gorm:"column:produced;not null;default:0"`
}

func (WarehouseModel) TableName() string {
	return "warehouses"
}

// ReportModel represents the reports table
type ReportModel struct {
	GameID   int    `gorm:"column:game_id;primaryKey"`
	NationID int    `gorm:"column:nation_id;primaryKey"`
	Turn     int    `gorm:"column:turn;primaryKey"`
	Key      string `gorm:"column:report_key;primaryKey"`
	Value    string `gorm:"column:value;type:text"`
}

func (ReportModel) TableName() string {
	return "reports"
}

// NewsModel represents the news table
type NewsModel struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement"`
	GameID    int       `gorm:"column:game_id;not null;index:idx_news_turn,priority:1"`
	Turn      int       `gorm:"column:turn;not null;index:idx_news_turn,priority:2"`
	NationID  int       `gorm:"column:nation_id;not null"`
	Subject   int       `gorm:"column:subject;default:0"`
	Type      int       `gorm:"column:type;not null"`
	Global    bool      `gorm:"column:global;default:false"`
	BaseID    string    `gorm:"column:base_id;index"`
	Text      string    `gorm:"column:text;type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (NewsModel) TableName() string {
	return "news"
}

// ProfileModel represents the profiles table of per-user counters
type ProfileModel struct {
	GameID   int    `gorm:"column:game_id;primaryKey"`
	NationID int    `gorm:"column:nation_id;primaryKey"`
	Key      string `gorm:"column:profile_key;primaryKey"`
	UserID   int    `gorm:"column:user_id;default:0"`
	Value    int    `gorm:"column:value;default:0"`
}

func (ProfileModel) TableName() string {
	return "profiles"
}

// OrderModel represents the orders table. Params and UsedGoods are JSON.
type OrderModel struct {
	ID          int    `gorm:"column:id;primaryKey"`
	GameID      int    `gorm:"column:game_id;not null;index:idx_order_turn,priority:1"`
	Turn        int    `gorm:"column:turn;not null;index:idx_order_turn,priority:2"`
	NationID    int    `gorm:"column:nation_id;not null"`
	Type        int    `gorm:"column:type;not null"`
	Position    int    `gorm:"column:position;default:0"`
	Params      string `gorm:"column:params;type:text"`
	Processed   bool   `gorm:"column:processed;default:false"`
	Result      int    `gorm:"column:result;default:0"`
	Explanation string `gorm:"column:explanation;type:text"`
	UsedGoods   string `gorm:"column:used_goods;type:text"`
}

func (OrderModel) TableName() string {
	return "orders"
}

// AllModels lists every model for auto-migration
func AllModels() []interface{} {
	return []interface{}{
		&GameModel{},
		&NationModel{},
		&RelationModel{},
		&SectorModel{},
		&BrigadeModel{},
		&BattalionModel{},
		&CommanderModel{},
		&ShipModel{},
		&BaggageTrainModel{},
		&PrisonerModel{},
		&TradeCityModel{},
		&WarehouseModel{},
		&ReportModel{},
		&NewsModel{},
		&ProfileModel{},
		&OrderModel{},
	}
}
