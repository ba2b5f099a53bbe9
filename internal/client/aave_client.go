package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"aave_portfolio/internal/app/port"
	"aave_portfolio/internal/config"
	"aave_portfolio/internal/domain/entity"
	aave_entity "aave_portfolio/internal/entity"
	"aave_portfolio/internal/pkg/metrics"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// portfolioQuery fetches the account's supplies, borrows and market state in
// a single document, so one POST covers the whole position set. No
// pagination: the API returns the full set for one account in one response.
const portfolioQuery = `
query PortfolioOverview($markets: [MarketInput!]!, $market: String!, $user: String!, $chainId: Int!) {
  userSupplies(request: { markets: $markets, user: $user }) {
    market { name chain { chainId } }
    currency { symbol name }
    balance { amount { value } usd }
    apy { formatted }
    isCollateral
    canBeCollateral
  }
  userBorrows(request: { markets: $markets, user: $user }) {
    market { name chain { chainId } }
    currency { symbol name }
    debt { amount { value } usd }
    apy { formatted }
  }
  userMarketState(request: { market: $market, user: $user, chainId: $chainId }) {
    netWorth
    netAPY { formatted }
    healthFactor
    eModeEnabled
    totalCollateralBase
    totalDebtBase
    availableBorrowsBase
    currentLiquidationThreshold { formatted }
    ltv { formatted }
    isInIsolationMode
  }
}`

// graphQLTransport abstracts the fasthttp client so tests can substitute a
// deterministic fake.
type graphQLTransport interface {
	DoDeadline(req *fasthttp.Request, resp *fasthttp.Response, deadline time.Time) error
	DoTimeout(req *fasthttp.Request, resp *fasthttp.Response, timeout time.Duration) error
}

// aaveClientImpl implements port.PositionFetcher against the Aave V3 GraphQL API.
type aaveClientImpl struct {
	transport  graphQLTransport
	endpoint   string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewAaveClient creates a new fetcher for the protocol GraphQL API.
func NewAaveClient(cfg config.AaveAPIConfig, logger *zap.Logger) port.PositionFetcher {
	return newAaveClient(cfg, &fasthttp.Client{}, logger)
}

func newAaveClient(cfg config.AaveAPIConfig, transport graphQLTransport, logger *zap.Logger) *aaveClientImpl {
	return &aaveClientImpl{
		transport:  transport,
		endpoint:   strings.TrimRight(cfg.EndpointURL, "/"),
		timeout:    time.Duration(cfg.RequestTimeoutMillis) * time.Millisecond,
		maxRetries: cfg.MaxRetries,
		retryDelay: time.Duration(cfg.RetryDelayMs) * time.Millisecond,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimitPerSecond), cfg.RateBurst),
		logger:     logger.Named("AaveClient"),
	}
}

// Fetch implements port.PositionFetcher.
func (c *aaveClientImpl) Fetch(ctx context.Context, network entity.NetworkDefinition, walletAddress string) (entity.RawPositions, error) {
	// Fail fast on a malformed address: no network call is made.
	if !entity.IsValidAddress(walletAddress) {
		metrics.FetchRequestsTotal.WithLabelValues(network.Identifier, string(entity.ErrKindInvalidAddress)).Inc()
		return entity.RawPositions{}, entity.NewPortfolioError(
			entity.ErrKindInvalidAddress, network.Name, walletAddress,
			"Invalid address format. Address must start with 0x and be 42 characters long.", nil)
	}

	start := time.Now()
	raw, err := c.fetch(ctx, network, walletAddress)
	metrics.FetchDurationSeconds.WithLabelValues(network.Identifier).Observe(time.Since(start).Seconds())

	outcome := "success"
	if kind := entity.KindOf(err); kind != "" {
		outcome = string(kind)
	}
	metrics.FetchRequestsTotal.WithLabelValues(network.Identifier, outcome).Inc()
	return raw, err
}

func (c *aaveClientImpl) fetch(ctx context.Context, network entity.NetworkDefinition, walletAddress string) (entity.RawPositions, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return entity.RawPositions{}, entity.NewPortfolioError(
			entity.ErrKindNetworkUnreachable, network.Name, walletAddress,
			"Request cancelled while waiting for the rate limiter.", err)
	}

	body, err := json.Marshal(aave_entity.GraphQLRequest{
		Query: portfolioQuery,
		Variables: map[string]any{
			"markets": []map[string]any{{"address": network.MarketAddress, "chainId": network.ChainID}},
			"market":  network.MarketAddress,
			"chainId": network.ChainID,
			"user":    walletAddress,
		},
	})
	if err != nil {
		return entity.RawPositions{}, fmt.Errorf("failed to marshal portfolio query: %w", err)
	}

	rawBody, status, err := c.post(ctx, body)
	if err != nil {
		c.logger.Error("Protocol API request failed after retry",
			zap.String("network", network.Name), zap.Error(err))
		return entity.RawPositions{}, entity.NewPortfolioError(
			entity.ErrKindNetworkUnreachable, network.Name, walletAddress,
			fmt.Sprintf("Could not reach the %s data API. Please try again later.", network.Name), err)
	}

	if status != fasthttp.StatusOK {
		c.logger.Error("Protocol API returned non-success status",
			zap.String("network", network.Name),
			zap.Int("statusCode", status),
			zap.ByteString("responseBody", rawBody))
		return entity.RawPositions{}, entity.NewPortfolioError(
			entity.ErrKindAPIError, network.Name, walletAddress,
			fmt.Sprintf("The data API responded with status %d: %s", status, strings.TrimSpace(string(rawBody))), nil)
	}

	var resp aave_entity.PortfolioResponse
	if err := json.Unmarshal(rawBody, &resp); err != nil {
		c.logger.Error("Failed to unmarshal protocol API response",
			zap.String("network", network.Name),
			zap.ByteString("responseBody", rawBody),
			zap.Error(err))
		return entity.RawPositions{}, entity.NewPortfolioError(
			entity.ErrKindAPIError, network.Name, walletAddress,
			"The data API returned a malformed response.", err)
	}

	if len(resp.Errors) > 0 {
		msgs := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			msgs = append(msgs, e.Message)
		}
		// Upstream message carried verbatim for display.
		return entity.RawPositions{}, entity.NewPortfolioError(
			entity.ErrKindAPIError, network.Name, walletAddress,
			strings.Join(msgs, "; "), nil)
	}

	raw := toRawPositions(network, walletAddress, &resp)
	if raw.Empty() {
		return entity.RawPositions{}, entity.NewPortfolioError(
			entity.ErrKindNoPositions, network.Name, walletAddress,
			fmt.Sprintf("No positions found for %s on %s.", entity.ShortenAddress(walletAddress), network.Name),
			entity.ErrNoPositions)
	}

	c.logger.Debug("Fetched positions",
		zap.String("network", network.Name),
		zap.String("wallet", walletAddress),
		zap.Int("supplyCount", len(raw.Supplies)),
		zap.Int("borrowCount", len(raw.Borrows)))
	return raw, nil
}

// post executes the request, retrying once on transport failure with a fixed
// delay. Non-success statuses are not retried; they are the API answering.
func (c *aaveClientImpl) post(ctx context.Context, body []byte) ([]byte, int, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Warn("Retrying protocol API request",
				zap.Int("attempt", attempt+1), zap.Duration("delay", c.retryDelay), zap.Error(lastErr))
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}

		rawBody, status, err := c.doOnce(ctx, body)
		if err == nil {
			return rawBody, status, nil
		}
		lastErr = err
	}
	return nil, 0, lastErr
}

func (c *aaveClientImpl) doOnce(ctx context.Context, body []byte) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(c.endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBody(body)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.transport.DoDeadline(req, resp, deadline); err != nil {
			return nil, 0, fmt.Errorf("failed to execute request to %s: %w", c.endpoint, err)
		}
	} else {
		if err := c.transport.DoTimeout(req, resp, c.timeout); err != nil {
			return nil, 0, fmt.Errorf("failed to execute request to %s with default timeout: %w", c.endpoint, err)
		}
	}

	rawBody := make([]byte, len(resp.Body()))
	copy(rawBody, resp.Body())
	return rawBody, resp.StatusCode(), nil
}

func toRawPositions(network entity.NetworkDefinition, walletAddress string, resp *aave_entity.PortfolioResponse) entity.RawPositions {
	raw := entity.RawPositions{
		Network:  network,
		Address:  walletAddress,
		Supplies: make([]entity.RawSupply, 0, len(resp.Data.UserSupplies)),
		Borrows:  make([]entity.RawBorrow, 0, len(resp.Data.UserBorrows)),
	}

	for _, s := range resp.Data.UserSupplies {
		raw.Supplies = append(raw.Supplies, entity.RawSupply{
			MarketName:      s.Market.Name,
			Symbol:          s.Currency.Symbol,
			Name:            s.Currency.Name,
			Quantity:        s.Balance.Amount.Value.NullDecimal,
			ValueUSD:        s.Balance.USD.NullDecimal,
			APYPercent:      s.APY.Percent(),
			IsCollateral:    s.IsCollateral,
			CanBeCollateral: s.CanBeCollateral,
		})
	}

	for _, b := range resp.Data.UserBorrows {
		raw.Borrows = append(raw.Borrows, entity.RawBorrow{
			MarketName: b.Market.Name,
			Symbol:     b.Currency.Symbol,
			Name:       b.Currency.Name,
			Quantity:   b.Debt.Amount.Value.NullDecimal,
			ValueUSD:   b.Debt.USD.NullDecimal,
			APYPercent: b.APY.Percent(),
			RateMode:   strings.ToLower(b.RateMode),
		})
	}

	if ms := resp.Data.UserMarketState; ms != nil {
		raw.MarketState = &entity.RawMarketState{
			NetWorth:             ms.NetWorth.NullDecimal,
			NetAPYFormatted:      ms.NetAPY.Formatted,
			HealthFactor:         toHealthMetric(ms.HealthFactor),
			TotalCollateralUSD:   ms.TotalCollateralBase.NullDecimal,
			TotalDebtUSD:         ms.TotalDebtBase.NullDecimal,
			AvailableBorrowsUSD:  ms.AvailableBorrowsBase.NullDecimal,
			CurrentLTV:           ms.LTV.Formatted,
			LiquidationThreshold: ms.CurrentLiquidationThreshold.Formatted,
			EModeEnabled:         ms.EModeEnabled,
			IsInIsolationMode:    ms.IsInIsolationMode,
		}
	}
	return raw
}

// toHealthMetric passes the upstream health factor through without any local
// recomputation: absent stays undefined, "∞" stays infinite.
func toHealthMetric(h aave_entity.HealthFactorValue) entity.Metric {
	switch {
	case !h.Present:
		return entity.UndefinedMetric()
	case h.Infinite:
		return entity.InfiniteMetric()
	default:
		return entity.FiniteMetric(h.Value)
	}
}
