package service

import (
	"context"
	"errors"
	"sync"

	"aave_portfolio/internal/app/port"
	"aave_portfolio/internal/config"
	"aave_portfolio/internal/domain/entity"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// portfolioServiceImpl implements the PortfolioService interface.
type portfolioServiceImpl struct {
	fetcher         port.PositionFetcher
	networkProvider port.NetworkDefinitionProvider
	cfg             *config.Config
	logger          *zap.Logger
}

// NewPortfolioService creates a new instance of PortfolioService.
func NewPortfolioService(
	fetcher port.PositionFetcher,
	networkProvider port.NetworkDefinitionProvider,
	cfg *config.Config,
	logger *zap.Logger,
) port.PortfolioService {
	return &portfolioServiceImpl{
		fetcher:         fetcher,
		networkProvider: networkProvider,
		cfg:             cfg,
		logger:          logger.Named("PortfolioService"),
	}
}

// GetPortfolio fetches and normalizes one account's positions on one network.
func (s *portfolioServiceImpl) GetPortfolio(ctx context.Context, networkName, walletAddress string) (*entity.PortfolioSnapshot, error) {
	network, ok := s.networkProvider.GetNetworkDefinitionByName(networkName)
	if !ok {
		return nil, entity.NewPortfolioError(
			entity.ErrKindUnknownNetwork, networkName, walletAddress,
			"Unsupported network: "+networkName, nil)
	}

	raw, err := s.fetcher.Fetch(ctx, network, walletAddress)
	if err != nil {
		// Terminal: a snapshot without positions risks being misread as
		// "zero positions".
		return nil, err
	}

	snapshot := Normalize(raw)
	s.logger.Info("Portfolio normalized",
		zap.String("network", network.Name),
		zap.String("wallet", entity.ShortenAddress(walletAddress)),
		zap.Int("supplyCount", len(snapshot.Supplies)),
		zap.Int("borrowCount", len(snapshot.Borrows)),
		zap.Int("incompleteRecords", snapshot.IncompleteRecords))
	return &snapshot, nil
}

// ScanAllNetworks fetches the same address across every supported market with
// a bounded fan-out. Each (network, address) query is independent and
// idempotent, so parallel fetches are safe.
func (s *portfolioServiceImpl) ScanAllNetworks(ctx context.Context, walletAddress string) ([]entity.PortfolioSnapshot, []entity.PortfolioError) {
	networks := s.networkProvider.GetAllNetworkDefinitions()

	if !entity.IsValidAddress(walletAddress) {
		// One error for the whole scan instead of 18 identical ones.
		return nil, []entity.PortfolioError{*entity.NewPortfolioError(
			entity.ErrKindInvalidAddress, "", walletAddress,
			"Invalid address format. Address must start with 0x and be 42 characters long.", nil)}
	}

	found := make([]entity.PortfolioSnapshot, 0, len(networks))
	var scanErrors []entity.PortfolioError
	var mu sync.Mutex

	eg, childCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.cfg.Scan.MaxConcurrentRequests)

	for _, network := range networks {
		net := network
		eg.Go(func() error {
			raw, err := s.fetcher.Fetch(childCtx, net, walletAddress)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				if errors.Is(err, entity.ErrNoPositions) {
					// An empty market is the common case, not an error.
					return nil
				}
				var pe *entity.PortfolioError
				if errors.As(err, &pe) {
					scanErrors = append(scanErrors, *pe)
				} else {
					scanErrors = append(scanErrors, *entity.NewPortfolioError(
						entity.ErrKindAPIError, net.Name, walletAddress, err.Error(), err))
				}
				return nil // Report as handled to the errgroup.
			}

			found = append(found, Normalize(raw))
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		s.logger.Error("Error scanning networks with errgroup", zap.Error(err))
	}

	s.logger.Info("Network scan complete",
		zap.String("wallet", entity.ShortenAddress(walletAddress)),
		zap.Int("networksWithPositions", len(found)),
		zap.Int("errorCount", len(scanErrors)))
	return found, scanErrors
}
