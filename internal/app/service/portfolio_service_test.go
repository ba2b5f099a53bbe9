package service

import (
	"context"
	"sync"
	"testing"

	"aave_portfolio/internal/config"
	"aave_portfolio/internal/domain/entity"
	"aave_portfolio/internal/infrastructure/networkdefinition"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const serviceTestWallet = "0x742d35cc6e5c4ce3b69a2a8c7c8e5f7e9a0b1234"

// fakeFetcher routes each fetch through a per-network responder, counting
// calls under a lock because the scan fans out.
type fakeFetcher struct {
	mu      sync.Mutex
	calls   map[string]int
	respond func(network entity.NetworkDefinition) (entity.RawPositions, error)
}

func (f *fakeFetcher) Fetch(_ context.Context, network entity.NetworkDefinition, _ string) (entity.RawPositions, error) {
	f.mu.Lock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[network.Identifier]++
	f.mu.Unlock()
	return f.respond(network)
}

func noPositionsErr(network entity.NetworkDefinition, wallet string) error {
	return entity.NewPortfolioError(entity.ErrKindNoPositions, network.Name, wallet,
		"No positions found.", entity.ErrNoPositions)
}

func positionsOn(network entity.NetworkDefinition, wallet string) entity.RawPositions {
	return entity.RawPositions{
		Network: network,
		Address: wallet,
		Supplies: []entity.RawSupply{{
			Symbol:     "WETH",
			Quantity:   validDec("1"),
			ValueUSD:   validDec("2500"),
			APYPercent: 2.0,
		}},
	}
}

func newTestService(fetcher *fakeFetcher) *portfolioServiceImpl {
	return &portfolioServiceImpl{
		fetcher:         fetcher,
		networkProvider: networkdefinition.NewStaticProvider(zap.NewNop()),
		cfg:             config.Default(),
		logger:          zap.NewNop(),
	}
}

func TestGetPortfolioUnknownNetwork(t *testing.T) {
	fetcher := &fakeFetcher{respond: func(n entity.NetworkDefinition) (entity.RawPositions, error) {
		return positionsOn(n, serviceTestWallet), nil
	}}
	svc := newTestService(fetcher)

	_, err := svc.GetPortfolio(context.Background(), "dogechain", serviceTestWallet)

	require.Error(t, err)
	assert.Equal(t, entity.ErrKindUnknownNetwork, entity.KindOf(err))
	assert.Empty(t, fetcher.calls, "unknown network must not reach the fetcher")
}

func TestGetPortfolioNormalizesFetchedPositions(t *testing.T) {
	fetcher := &fakeFetcher{respond: func(n entity.NetworkDefinition) (entity.RawPositions, error) {
		return positionsOn(n, serviceTestWallet), nil
	}}
	svc := newTestService(fetcher)

	snapshot, err := svc.GetPortfolio(context.Background(), "ethereum", serviceTestWallet)

	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, "ethereum", snapshot.Network.Identifier)
	require.Len(t, snapshot.Supplies, 1)
	assert.True(t, snapshot.TotalCollateralUSD.Equal(validDec("2500").Decimal))
	assert.Equal(t, 1, fetcher.calls["ethereum"])
}

func TestGetPortfolioFetchErrorIsTerminal(t *testing.T) {
	fetcher := &fakeFetcher{respond: func(n entity.NetworkDefinition) (entity.RawPositions, error) {
		return entity.RawPositions{}, entity.NewPortfolioError(
			entity.ErrKindNetworkUnreachable, n.Name, serviceTestWallet, "timeout", nil)
	}}
	svc := newTestService(fetcher)

	snapshot, err := svc.GetPortfolio(context.Background(), "ethereum", serviceTestWallet)

	require.Error(t, err)
	assert.Nil(t, snapshot, "no partial snapshot on a failed fetch")
	assert.Equal(t, entity.ErrKindNetworkUnreachable, entity.KindOf(err))
}

func TestScanAllNetworksCollectsAcrossMarkets(t *testing.T) {
	fetcher := &fakeFetcher{respond: func(n entity.NetworkDefinition) (entity.RawPositions, error) {
		switch n.Identifier {
		case "ethereum", "base":
			return positionsOn(n, serviceTestWallet), nil
		case "polygon":
			return entity.RawPositions{}, entity.NewPortfolioError(
				entity.ErrKindNetworkUnreachable, n.Name, serviceTestWallet, "timeout", nil)
		default:
			return entity.RawPositions{}, noPositionsErr(n, serviceTestWallet)
		}
	}}
	svc := newTestService(fetcher)

	portfolios, scanErrors := svc.ScanAllNetworks(context.Background(), serviceTestWallet)

	assert.Len(t, portfolios, 2, "only markets with positions are returned")
	require.Len(t, scanErrors, 1, "empty markets are not errors")
	assert.Equal(t, entity.ErrKindNetworkUnreachable, scanErrors[0].Kind)
	assert.Equal(t, "Polygon PoS", scanErrors[0].NetworkName)
	assert.Len(t, fetcher.calls, 18, "every supported market is queried once")
}

func TestScanAllNetworksInvalidAddressShortCircuits(t *testing.T) {
	fetcher := &fakeFetcher{respond: func(n entity.NetworkDefinition) (entity.RawPositions, error) {
		return positionsOn(n, serviceTestWallet), nil
	}}
	svc := newTestService(fetcher)

	portfolios, scanErrors := svc.ScanAllNetworks(context.Background(), "0x123")

	assert.Empty(t, portfolios)
	require.Len(t, scanErrors, 1)
	assert.Equal(t, entity.ErrKindInvalidAddress, scanErrors[0].Kind)
	assert.Empty(t, fetcher.calls, "validation failure must not fan out")
}
