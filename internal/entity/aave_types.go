package entity

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// GraphQLRequest is the JSON body posted to the protocol's GraphQL endpoint.
type GraphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// GraphQLError is a single entry of the GraphQL errors payload. The message
// is carried verbatim for display.
type GraphQLError struct {
	Message string `json:"message"`
}

// PortfolioResponse is the envelope for the combined portfolio query. All
// three root fields come back in one response, so one POST covers the whole
// fetch.
type PortfolioResponse struct {
	Data struct {
		UserSupplies    []UserSupply     `json:"userSupplies"`
		UserBorrows     []UserBorrow     `json:"userBorrows"`
		UserMarketState *UserMarketState `json:"userMarketState"`
	} `json:"data"`
	Errors []GraphQLError `json:"errors"`
}

// MarketRef identifies the market a position belongs to.
type MarketRef struct {
	Name  string `json:"name"`
	Chain struct {
		ChainID int64 `json:"chainId"`
	} `json:"chain"`
}

// CurrencyRef identifies the asset of a position.
type CurrencyRef struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// FormattedValue wraps upstream values that arrive pre-formatted, e.g. "3.52%".
type FormattedValue struct {
	Formatted string `json:"formatted"`
}

// Percent parses the formatted value as a percentage, returning 0 when it is
// absent or not numeric.
func (v FormattedValue) Percent() float64 {
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v.Formatted), "%"))
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// FlexNumber decodes a JSON number, a numeric string, or null. Upstream
// numeric fields are not guaranteed to use one encoding consistently, so
// decoding never fails; malformed input just leaves the value invalid.
type FlexNumber struct {
	decimal.NullDecimal
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	n.Valid = false
	s := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	if s == "" || s == "null" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	n.Decimal = d
	n.Valid = true
	return nil
}

// AmountRef nests the underlying token quantity.
type AmountRef struct {
	Value FlexNumber `json:"value"`
}

// BalanceRef carries a position's token quantity and its USD valuation at
// fetch time.
type BalanceRef struct {
	Amount AmountRef  `json:"amount"`
	USD    FlexNumber `json:"usd"`
}

// UserSupply is one supply record of the userSupplies query.
type UserSupply struct {
	Market          MarketRef      `json:"market"`
	Currency        CurrencyRef    `json:"currency"`
	Balance         BalanceRef     `json:"balance"`
	APY             FormattedValue `json:"apy"`
	IsCollateral    bool           `json:"isCollateral"`
	CanBeCollateral bool           `json:"canBeCollateral"`
}

// UserBorrow is one debt record of the userBorrows query. RateMode is only
// populated on markets whose API version exposes it.
type UserBorrow struct {
	Market   MarketRef      `json:"market"`
	Currency CurrencyRef    `json:"currency"`
	Debt     BalanceRef     `json:"debt"`
	APY      FormattedValue `json:"apy"`
	RateMode string         `json:"rateMode"`
}

// HealthFactorValue decodes the upstream health factor, which may be a
// number, a numeric string, "∞", or null.
type HealthFactorValue struct {
	Present  bool
	Infinite bool
	Value    float64
}

// UnmarshalJSON implements json.Unmarshaler.
func (h *HealthFactorValue) UnmarshalJSON(data []byte) error {
	*h = HealthFactorValue{}
	s := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	if s == "" || s == "null" {
		return nil
	}
	if s == "∞" || strings.EqualFold(s, "inf") || strings.EqualFold(s, "infinity") {
		h.Present = true
		h.Infinite = true
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	h.Present = true
	h.Value = f
	return nil
}

// UserMarketState is the account summary of the userMarketState query.
type UserMarketState struct {
	NetWorth                    FlexNumber        `json:"netWorth"`
	NetAPY                      FormattedValue    `json:"netAPY"`
	HealthFactor                HealthFactorValue `json:"healthFactor"`
	EModeEnabled                bool              `json:"eModeEnabled"`
	TotalCollateralBase         FlexNumber        `json:"totalCollateralBase"`
	TotalDebtBase               FlexNumber        `json:"totalDebtBase"`
	AvailableBorrowsBase        FlexNumber        `json:"availableBorrowsBase"`
	CurrentLiquidationThreshold FormattedValue    `json:"currentLiquidationThreshold"`
	LTV                         FormattedValue    `json:"ltv"`
	IsInIsolationMode           bool              `json:"isInIsolationMode"`
}
