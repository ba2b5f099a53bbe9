package port

import (
	"context"

	"aave_portfolio/internal/domain/entity"
)

// PositionFetcher defines the interface for fetching an account's raw
// positions from the protocol API.
type PositionFetcher interface {
	// Fetch issues one query for the account's supplies, borrows and health
	// figures on the given market. It validates the wallet address before any
	// network call and returns a typed *entity.PortfolioError on failure,
	// including entity.ErrNoPositions when the account is empty.
	Fetch(ctx context.Context, network entity.NetworkDefinition, walletAddress string) (entity.RawPositions, error)
}
