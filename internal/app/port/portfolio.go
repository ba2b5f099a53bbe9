package port

import (
	"context"

	"aave_portfolio/internal/domain/entity"
)

// PortfolioService defines the interface for producing portfolio snapshots.
type PortfolioService interface {
	// GetPortfolio fetches and normalizes the account's positions on one
	// network. Fetch errors are terminal: no partial snapshot is produced.
	GetPortfolio(ctx context.Context, networkName, walletAddress string) (*entity.PortfolioSnapshot, error)

	// ScanAllNetworks fetches the same address across every supported market
	// and returns one snapshot per market with positions, plus typed errors
	// for the markets that failed. Markets where the account simply has no
	// positions are omitted from both slices.
	ScanAllNetworks(ctx context.Context, walletAddress string) ([]entity.PortfolioSnapshot, []entity.PortfolioError)
}
