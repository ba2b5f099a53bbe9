package entity

import "github.com/shopspring/decimal"

// PortfolioSnapshot is the Metrics Normalizer's single output value: an
// immutable aggregate of the account's positions and derived, unit-consistent
// metrics for one (network, address) pair. It is consumed read-only by the
// presentation layer and discarded after one render; it is never cached or
// persisted. Rendering code must not re-derive metrics already computed here.
type PortfolioSnapshot struct {
	Network NetworkDefinition `json:"network"`
	Address string            `json:"address"`

	Supplies []SupplyPosition `json:"supplies"`
	Borrows  []BorrowPosition `json:"borrows"`
	Health   AccountHealth    `json:"health"`

	// TotalCollateralUSD and TotalDebtUSD are sums over the position records
	// above; they may differ slightly from the upstream base-currency figures
	// on Health, which are kept for display parity.
	TotalCollateralUSD decimal.Decimal `json:"totalCollateralUsd"`
	TotalDebtUSD       decimal.Decimal `json:"totalDebtUsd"`
	NetWorthUSD        decimal.Decimal `json:"netWorthUsd"`

	// Utilization is total debt over total collateral, 0 when the account has
	// no collateral.
	Utilization float64 `json:"utilization"`
	// NetAPY is the USD-weighted blended yield across all positions,
	// undefined when net worth is not positive.
	NetAPY Metric `json:"netApy"`

	// IncompleteRecords counts positions flagged Incomplete.
	IncompleteRecords int `json:"incompleteRecords"`
}
