package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexNumberUnmarshal(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
		want  string
	}{
		{`1234.56`, true, "1234.56"},
		{`"1234.56"`, true, "1234.56"},
		{`"0"`, true, "0"},
		{`0`, true, "0"},
		{`null`, false, ""},
		{`""`, false, ""},
		{`"not-a-number"`, false, ""},
	}

	for _, tc := range cases {
		var n FlexNumber
		require.NoError(t, json.Unmarshal([]byte(tc.in), &n), "input %s", tc.in)
		assert.Equal(t, tc.valid, n.Valid, "input %s", tc.in)
		if tc.valid {
			assert.Equal(t, tc.want, n.Decimal.String(), "input %s", tc.in)
		}
	}
}

func TestHealthFactorValueUnmarshal(t *testing.T) {
	var h HealthFactorValue

	require.NoError(t, json.Unmarshal([]byte(`"∞"`), &h))
	assert.True(t, h.Present)
	assert.True(t, h.Infinite)

	require.NoError(t, json.Unmarshal([]byte(`null`), &h))
	assert.False(t, h.Present)

	require.NoError(t, json.Unmarshal([]byte(`"1.85"`), &h))
	assert.True(t, h.Present)
	assert.False(t, h.Infinite)
	assert.InDelta(t, 1.85, h.Value, 1e-9)

	require.NoError(t, json.Unmarshal([]byte(`2.4`), &h))
	assert.True(t, h.Present)
	assert.InDelta(t, 2.4, h.Value, 1e-9)

	require.NoError(t, json.Unmarshal([]byte(`"garbage"`), &h))
	assert.False(t, h.Present)
}

func TestFormattedValuePercent(t *testing.T) {
	assert.InDelta(t, 3.52, FormattedValue{Formatted: "3.52%"}.Percent(), 1e-9)
	assert.InDelta(t, 3.52, FormattedValue{Formatted: " 3.52 % "}.Percent(), 1e-9)
	assert.InDelta(t, 1250, FormattedValue{Formatted: "1,250%"}.Percent(), 1e-9)
	assert.InDelta(t, 0, FormattedValue{}.Percent(), 1e-9)
	assert.InDelta(t, 0, FormattedValue{Formatted: "abc"}.Percent(), 1e-9)
	assert.InDelta(t, -0.75, FormattedValue{Formatted: "-0.75%"}.Percent(), 1e-9)
}

func TestPortfolioResponseDecode(t *testing.T) {
	body := `{
		"data": {
			"userSupplies": [{
				"market": {"name": "AaveV3Ethereum", "chain": {"chainId": 1}},
				"currency": {"symbol": "WETH", "name": "Wrapped Ether"},
				"balance": {"amount": {"value": "2.5"}, "usd": "6250.00"},
				"apy": {"formatted": "1.92%"},
				"isCollateral": true,
				"canBeCollateral": true
			}],
			"userBorrows": [{
				"market": {"name": "AaveV3Ethereum", "chain": {"chainId": 1}},
				"currency": {"symbol": "USDC", "name": "USD Coin"},
				"debt": {"amount": {"value": 1000}, "usd": 1000.4},
				"apy": {"formatted": "5.10%"}
			}],
			"userMarketState": {
				"netWorth": "5249.60",
				"netAPY": {"formatted": "0.58%"},
				"healthFactor": "2.31",
				"eModeEnabled": false,
				"totalCollateralBase": "6250.00",
				"totalDebtBase": "1000.40",
				"availableBorrowsBase": "4000.00",
				"currentLiquidationThreshold": {"formatted": "82.5%"},
				"ltv": {"formatted": "16.0%"},
				"isInIsolationMode": false
			}
		}
	}`

	var resp PortfolioResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.Len(t, resp.Data.UserSupplies, 1)
	require.Len(t, resp.Data.UserBorrows, 1)
	require.NotNil(t, resp.Data.UserMarketState)
	assert.Empty(t, resp.Errors)

	sup := resp.Data.UserSupplies[0]
	assert.Equal(t, "WETH", sup.Currency.Symbol)
	assert.True(t, sup.Balance.Amount.Value.Valid)
	assert.Equal(t, "2.5", sup.Balance.Amount.Value.Decimal.String())
	assert.True(t, sup.IsCollateral)

	bor := resp.Data.UserBorrows[0]
	assert.True(t, bor.Debt.USD.Valid)
	assert.Equal(t, "1000.4", bor.Debt.USD.Decimal.String())

	ms := resp.Data.UserMarketState
	assert.True(t, ms.HealthFactor.Present)
	assert.InDelta(t, 2.31, ms.HealthFactor.Value, 1e-9)
	assert.Equal(t, "82.5%", ms.CurrentLiquidationThreshold.Formatted)
}
