package entity

import "github.com/shopspring/decimal"

// RawSupply is one collateral record as returned by the protocol API, parsed
// but not yet validated. Quantity or ValueUSD may be invalid when the
// upstream field was absent or non-numeric.
type RawSupply struct {
	MarketName      string
	Symbol          string
	Name            string
	Quantity        decimal.NullDecimal
	ValueUSD        decimal.NullDecimal
	APYPercent      float64
	IsCollateral    bool
	CanBeCollateral bool
}

// RawBorrow is one debt record as returned by the protocol API.
type RawBorrow struct {
	MarketName string
	Symbol     string
	Name       string
	Quantity   decimal.NullDecimal
	ValueUSD   decimal.NullDecimal
	APYPercent float64
	// RateMode is "stable" or "variable" when the upstream API exposes it,
	// empty otherwise.
	RateMode string
}

// RawMarketState is the account-level summary as returned by the protocol
// API. The health factor is passed through verbatim; it is never recomputed
// locally.
type RawMarketState struct {
	NetWorth             decimal.NullDecimal
	NetAPYFormatted      string
	HealthFactor         Metric
	TotalCollateralUSD   decimal.NullDecimal
	TotalDebtUSD         decimal.NullDecimal
	AvailableBorrowsUSD  decimal.NullDecimal
	CurrentLTV           string
	LiquidationThreshold string
	EModeEnabled         bool
	IsInIsolationMode    bool
}

// RawPositions is the Position Fetcher's output for one (network, address)
// pair. MarketState is nil when upstream omitted the account summary.
type RawPositions struct {
	Network     NetworkDefinition
	Address     string
	Supplies    []RawSupply
	Borrows     []RawBorrow
	MarketState *RawMarketState
}

// Empty reports whether the account holds no positions on this network.
func (r RawPositions) Empty() bool {
	return len(r.Supplies) == 0 && len(r.Borrows) == 0
}

// SupplyPosition represents one normalized collateral deposit. Created fresh
// on every fetch; positions carry no identity across fetches.
type SupplyPosition struct {
	MarketName      string          `json:"marketName"`
	Symbol          string          `json:"symbol"`
	Name            string          `json:"name"`
	Quantity        decimal.Decimal `json:"quantity"`
	PriceUSD        decimal.Decimal `json:"priceUsd"`
	ValueUSD        decimal.Decimal `json:"valueUsd"`
	APYPercent      float64         `json:"apyPercent"`
	IsCollateral    bool            `json:"isCollateral"`
	CanBeCollateral bool            `json:"canBeCollateral"`
	// Incomplete marks a record whose quantity or USD value was missing or
	// non-numeric upstream. It contributes zero to totals and must be
	// visually flagged by the presentation layer rather than silently
	// dropped.
	Incomplete bool `json:"incomplete,omitempty"`
}

// BorrowPosition represents one normalized debt entry.
type BorrowPosition struct {
	MarketName string          `json:"marketName"`
	Symbol     string          `json:"symbol"`
	Name       string          `json:"name"`
	Quantity   decimal.Decimal `json:"quantity"`
	PriceUSD   decimal.Decimal `json:"priceUsd"`
	ValueUSD   decimal.Decimal `json:"valueUsd"`
	APYPercent float64         `json:"apyPercent"`
	RateMode   string          `json:"rateMode,omitempty"`
	Incomplete bool            `json:"incomplete,omitempty"`
}

// AccountHealth is the normalized account-level risk snapshot. USD figures
// are the upstream-provided base-currency values, kept for display parity
// with the protocol's own UI.
type AccountHealth struct {
	TotalCollateralUSD   decimal.Decimal `json:"totalCollateralUsd"`
	TotalDebtUSD         decimal.Decimal `json:"totalDebtUsd"`
	AvailableBorrowsUSD  decimal.Decimal `json:"availableBorrowsUsd"`
	HealthFactor         Metric          `json:"healthFactor"`
	HealthBucket         HealthBucket    `json:"healthBucket"`
	CurrentLTV           string          `json:"currentLtv"`
	LiquidationThreshold string          `json:"liquidationThreshold"`
	NetAPYFormatted      string          `json:"netApyFormatted"`
	EModeEnabled         bool            `json:"eModeEnabled"`
	IsInIsolationMode    bool            `json:"isInIsolationMode"`
}
