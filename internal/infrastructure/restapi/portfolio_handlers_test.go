package restapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"aave_portfolio/internal/domain/entity"
	"aave_portfolio/internal/infrastructure/networkdefinition"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubPortfolioService returns canned results, letting handler tests cover the
// envelope and status mapping without any fetching.
type stubPortfolioService struct {
	snapshot    *entity.PortfolioSnapshot
	err         error
	scanResults []entity.PortfolioSnapshot
	scanErrors  []entity.PortfolioError
}

func (s *stubPortfolioService) GetPortfolio(_ context.Context, _, _ string) (*entity.PortfolioSnapshot, error) {
	return s.snapshot, s.err
}

func (s *stubPortfolioService) ScanAllNetworks(_ context.Context, _ string) ([]entity.PortfolioSnapshot, []entity.PortfolioError) {
	return s.scanResults, s.scanErrors
}

func newTestRouter(svc *stubPortfolioService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewPortfolioHandler(svc, networkdefinition.NewStaticProvider(zap.NewNop()), zap.NewNop())
	SetupRoutes(router, handler)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const testWallet = "0x742d35cc6e5c4ce3b69a2a8c7c8e5f7e9a0b1234"

func sampleSnapshot() *entity.PortfolioSnapshot {
	return &entity.PortfolioSnapshot{
		Network: networkdefinition.Ethereum,
		Address: testWallet,
		Supplies: []entity.SupplyPosition{{
			Symbol:     "WETH",
			Quantity:   decimal.RequireFromString("2.5"),
			ValueUSD:   decimal.RequireFromString("6250"),
			APYPercent: 1.92,
		}},
		TotalCollateralUSD: decimal.RequireFromString("6250"),
		TotalDebtUSD:       decimal.RequireFromString("1000"),
		NetWorthUSD:        decimal.RequireFromString("5250"),
		Utilization:        0.16,
		NetAPY:             entity.FiniteMetric(0.58),
	}
}

func TestGetNetworksHandler(t *testing.T) {
	router := newTestRouter(&stubPortfolioService{})

	rec := doRequest(t, router, "/api/v1/networks")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Networks []entity.NetworkDefinition `json:"networks"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data.Networks, 18)
}

func TestGetPortfolioHandlerSuccess(t *testing.T) {
	router := newTestRouter(&stubPortfolioService{snapshot: sampleSnapshot()})

	rec := doRequest(t, router, "/api/v1/portfolio?network=ethereum&address="+testWallet)
	require.Equal(t, http.StatusOK, rec.Code)

	var body APIPortfolioResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Data)
	assert.Equal(t, testWallet, body.Data.Address)
	assert.Equal(t, "Portfolio retrieved successfully.", body.StatusMessage)
}

func TestGetPortfolioHandlerMissingParams(t *testing.T) {
	router := newTestRouter(&stubPortfolioService{})

	for _, path := range []string{
		"/api/v1/portfolio",
		"/api/v1/portfolio?network=ethereum",
		"/api/v1/portfolio?address=" + testWallet,
	} {
		rec := doRequest(t, router, path)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "path %s", path)
	}
}

func TestGetPortfolioHandlerNoPositionsIsNotAnError(t *testing.T) {
	router := newTestRouter(&stubPortfolioService{
		err: entity.NewPortfolioError(entity.ErrKindNoPositions, "Ethereum Mainnet", testWallet,
			"No positions found for 0x742d...1234 on Ethereum Mainnet.", entity.ErrNoPositions),
	})

	rec := doRequest(t, router, "/api/v1/portfolio?network=ethereum&address="+testWallet)
	require.Equal(t, http.StatusOK, rec.Code)

	var body APIPortfolioResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Nil(t, body.Data)
	assert.Contains(t, body.StatusMessage, "No positions found")
}

func TestGetPortfolioHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		kind       entity.ErrorKind
		wantStatus int
	}{
		{entity.ErrKindInvalidAddress, http.StatusBadRequest},
		{entity.ErrKindUnknownNetwork, http.StatusBadRequest},
		{entity.ErrKindNetworkUnreachable, http.StatusBadGateway},
		{entity.ErrKindAPIError, http.StatusBadGateway},
	}

	for _, tt := range tests {
		router := newTestRouter(&stubPortfolioService{
			err: entity.NewPortfolioError(tt.kind, "Ethereum Mainnet", testWallet, "boom", nil),
		})

		rec := doRequest(t, router, "/api/v1/portfolio?network=ethereum&address="+testWallet)
		assert.Equal(t, tt.wantStatus, rec.Code, "kind %s", tt.kind)

		var body APIErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, tt.kind, body.Error.Kind)
		assert.Equal(t, "boom", body.Error.Message)
	}
}

func TestScanPortfolioHandlerPartialResults(t *testing.T) {
	router := newTestRouter(&stubPortfolioService{
		scanResults: []entity.PortfolioSnapshot{*sampleSnapshot()},
		scanErrors: []entity.PortfolioError{*entity.NewPortfolioError(
			entity.ErrKindNetworkUnreachable, "Polygon PoS", testWallet, "timeout", nil)},
	})

	rec := doRequest(t, router, "/api/v1/portfolio/scan?address="+testWallet)
	require.Equal(t, http.StatusOK, rec.Code)

	var body APIScanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data.Portfolios, 1)
	require.Len(t, body.ServiceErrors, 1)
	assert.Equal(t, "Portfolios retrieved. Some networks encountered errors.", body.StatusMessage)
}

func TestScanPortfolioHandlerInvalidAddress(t *testing.T) {
	router := newTestRouter(&stubPortfolioService{
		scanErrors: []entity.PortfolioError{*entity.NewPortfolioError(
			entity.ErrKindInvalidAddress, "", "0x123", "Invalid address format.", nil)},
	})

	rec := doRequest(t, router, "/api/v1/portfolio/scan?address=0x123")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScanPortfolioHandlerEmptyEverywhere(t *testing.T) {
	router := newTestRouter(&stubPortfolioService{})

	rec := doRequest(t, router, "/api/v1/portfolio/scan?address="+testWallet)
	require.Equal(t, http.StatusOK, rec.Code)

	var body APIScanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Data.Portfolios)
	assert.Equal(t, "No positions found on any supported network.", body.StatusMessage)
}
