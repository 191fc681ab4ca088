package settings

// Setting is one row of the flat key-value table. Every value is stored as
// a string; typed access lives in the service.
type Setting struct {
	Key   string `json:"key" gorm:"primaryKey;column:key"`
	Value string `json:"value" gorm:"column:value;not null"`
}

func (Setting) TableName() string {
	return "settings"
}

// ExchangeRate is one row of the append-only rate history. It is written on
// every rate edit but never consulted by conversions, which always use the
// current settings value.
type ExchangeRate struct {
	ID        int64   `json:"id" gorm:"primaryKey"`
	Rate      float64 `json:"rate" gorm:"column:rate;not null"`
	UpdatedAt string  `json:"updated_at" gorm:"column:updated_at;not null"`
}

func (ExchangeRate) TableName() string {
	return "exchange_rates"
}

const (
	KeyExchangeRate     = "exchangeRate"
	KeyUSDExchangeRate  = "usdExchangeRate"
	KeyTripStartDate    = "tripStartDate"
	KeyInitialBudgetEur = "initialBudgetEur"
	KeyInitialBudgetClp = "initialBudgetClp"
	KeyCurrentUserID    = "currentUserId"
	KeyInstallationID   = "installationId"
)

// Settings is the typed view of the table, loaded once at startup and
// written back field by field on user edits. Last write wins; there is no
// audit trail beyond the rate history.
type Settings struct {
	ExchangeRate     float64 `json:"exchange_rate"`
	USDExchangeRate  float64 `json:"usd_exchange_rate"`
	TripStartDate    string  `json:"trip_start_date"`
	InitialBudgetEur float64 `json:"initial_budget_eur"`
	InitialBudgetClp float64 `json:"initial_budget_clp"`
	InstallationID   string  `json:"installation_id"`
}
