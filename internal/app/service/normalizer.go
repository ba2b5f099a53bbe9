package service

import (
	"aave_portfolio/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// Normalize converts raw position records into an immutable portfolio
// snapshot with derived, unit-consistent metrics. It is a pure function:
// no I/O, no clock, deterministic for identical input.
//
// Records with a missing or non-numeric quantity or USD value contribute
// zero to every total and are flagged Incomplete instead of being dropped,
// so the presentation layer can surface them. The health factor is passed
// through from upstream and never fabricated locally.
func Normalize(raw entity.RawPositions) entity.PortfolioSnapshot {
	snapshot := entity.PortfolioSnapshot{
		Network:  raw.Network,
		Address:  raw.Address,
		Supplies: make([]entity.SupplyPosition, 0, len(raw.Supplies)),
		Borrows:  make([]entity.BorrowPosition, 0, len(raw.Borrows)),
	}

	totalCollateral := decimal.Zero
	totalDebt := decimal.Zero
	var supplyYieldUSD, borrowCostUSD float64

	for _, s := range raw.Supplies {
		qty, usd, incomplete := amounts(s.Quantity, s.ValueUSD)
		snapshot.Supplies = append(snapshot.Supplies, entity.SupplyPosition{
			MarketName:      s.MarketName,
			Symbol:          s.Symbol,
			Name:            s.Name,
			Quantity:        qty,
			PriceUSD:        unitPrice(usd, qty),
			ValueUSD:        usd,
			APYPercent:      s.APYPercent,
			IsCollateral:    s.IsCollateral,
			CanBeCollateral: s.CanBeCollateral,
			Incomplete:      incomplete,
		})
		if incomplete {
			snapshot.IncompleteRecords++
		}
		totalCollateral = totalCollateral.Add(usd)
		supplyYieldUSD += usd.InexactFloat64() * s.APYPercent
	}

	for _, b := range raw.Borrows {
		qty, usd, incomplete := amounts(b.Quantity, b.ValueUSD)
		snapshot.Borrows = append(snapshot.Borrows, entity.BorrowPosition{
			MarketName: b.MarketName,
			Symbol:     b.Symbol,
			Name:       b.Name,
			Quantity:   qty,
			PriceUSD:   unitPrice(usd, qty),
			ValueUSD:   usd,
			APYPercent: b.APYPercent,
			RateMode:   b.RateMode,
			Incomplete: incomplete,
		})
		if incomplete {
			snapshot.IncompleteRecords++
		}
		totalDebt = totalDebt.Add(usd)
		borrowCostUSD += usd.InexactFloat64() * b.APYPercent
	}

	snapshot.TotalCollateralUSD = totalCollateral
	snapshot.TotalDebtUSD = totalDebt
	snapshot.NetWorthUSD = totalCollateral.Sub(totalDebt)

	// Utilization is 0, not NaN, for an account with no collateral.
	if totalCollateral.IsPositive() {
		snapshot.Utilization = totalDebt.Div(totalCollateral).InexactFloat64()
	}

	if netWorth := snapshot.NetWorthUSD.InexactFloat64(); netWorth > 0 {
		snapshot.NetAPY = entity.FiniteMetric((supplyYieldUSD - borrowCostUSD) / netWorth)
	} else {
		snapshot.NetAPY = entity.UndefinedMetric()
	}

	snapshot.Health = normalizeHealth(raw.MarketState)
	return snapshot
}

// amounts applies the zero-value-and-flag policy to one record's quantity and
// USD valuation.
func amounts(qty, usd decimal.NullDecimal) (decimal.Decimal, decimal.Decimal, bool) {
	if !qty.Valid || !usd.Valid {
		return decimal.Zero, decimal.Zero, true
	}
	return qty.Decimal, usd.Decimal, false
}

// unitPrice derives the per-unit USD price from the valuation; zero when the
// quantity is zero.
func unitPrice(usd, qty decimal.Decimal) decimal.Decimal {
	if qty.IsZero() {
		return decimal.Zero
	}
	return usd.Div(qty)
}

func normalizeHealth(ms *entity.RawMarketState) entity.AccountHealth {
	if ms == nil {
		// No account summary from upstream: the health factor stays
		// undefined so the presentation layer renders "N/A".
		hf := entity.UndefinedMetric()
		return entity.AccountHealth{
			HealthFactor: hf,
			HealthBucket: hf.Bucket(),
		}
	}
	return entity.AccountHealth{
		TotalCollateralUSD:   orZero(ms.TotalCollateralUSD),
		TotalDebtUSD:         orZero(ms.TotalDebtUSD),
		AvailableBorrowsUSD:  orZero(ms.AvailableBorrowsUSD),
		HealthFactor:         ms.HealthFactor,
		HealthBucket:         ms.HealthFactor.Bucket(),
		CurrentLTV:           ms.CurrentLTV,
		LiquidationThreshold: ms.LiquidationThreshold,
		NetAPYFormatted:      ms.NetAPYFormatted,
		EModeEnabled:         ms.EModeEnabled,
		IsInIsolationMode:    ms.IsInIsolationMode,
	}
}

func orZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}
