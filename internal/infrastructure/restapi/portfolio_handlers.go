package restapi

import (
	"errors"
	"net/http"

	"aave_portfolio/internal/app/port"
	"aave_portfolio/internal/domain/entity"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIPortfolioResponse is the envelope for the single-network portfolio
// endpoint. Data is null with an explanatory status message when the account
// has no positions, so an empty account never looks like an error page.
type APIPortfolioResponse struct {
	Data          *entity.PortfolioSnapshot `json:"data"`
	StatusMessage string                    `json:"status_message"`
}

// APIScanResponse is the envelope for the cross-network scan endpoint.
type APIScanResponse struct {
	Data struct {
		Portfolios []entity.PortfolioSnapshot `json:"portfolios"`
	} `json:"data"`
	ServiceErrors []entity.PortfolioError `json:"service_errors,omitempty"`
	StatusMessage string                  `json:"status_message"`
}

// APIErrorResponse carries a typed, human-readable failure. No raw transport
// errors reach the client.
type APIErrorResponse struct {
	Error entity.PortfolioError `json:"error"`
}

// PortfolioHandler handles HTTP requests related to portfolios.
type PortfolioHandler struct {
	portfolioService port.PortfolioService
	networkProvider  port.NetworkDefinitionProvider
	logger           *zap.Logger
}

// NewPortfolioHandler creates a new instance of PortfolioHandler.
func NewPortfolioHandler(ps port.PortfolioService, np port.NetworkDefinitionProvider, logger *zap.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: ps,
		networkProvider:  np,
		logger:           logger.Named("PortfolioHandler"),
	}
}

// GetNetworksHandler returns the supported-market table for selection UIs.
func (h *PortfolioHandler) GetNetworksHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"networks": h.networkProvider.GetAllNetworkDefinitions()},
	})
}

// GetPortfolioHandler returns one portfolio snapshot for ?network=&address=.
func (h *PortfolioHandler) GetPortfolioHandler(c *gin.Context) {
	ctx := c.Request.Context()
	networkName := c.Query("network")
	address := c.Query("address")

	if networkName == "" || address == "" {
		c.JSON(http.StatusBadRequest, APIErrorResponse{Error: *entity.NewPortfolioError(
			entity.ErrKindInvalidAddress, networkName, address,
			"Both 'network' and 'address' query parameters are required.", nil)})
		return
	}

	snapshot, err := h.portfolioService.GetPortfolio(ctx, networkName, address)
	if err != nil {
		if errors.Is(err, entity.ErrNoPositions) {
			c.JSON(http.StatusOK, APIPortfolioResponse{
				Data:          nil,
				StatusMessage: displayMessage(err),
			})
			return
		}
		h.writeError(c, networkName, address, err)
		return
	}

	c.JSON(http.StatusOK, APIPortfolioResponse{
		Data:          snapshot,
		StatusMessage: "Portfolio retrieved successfully.",
	})
}

// ScanPortfolioHandler returns one snapshot per market with positions for
// ?address=.
func (h *PortfolioHandler) ScanPortfolioHandler(c *gin.Context) {
	ctx := c.Request.Context()
	address := c.Query("address")

	if address == "" {
		c.JSON(http.StatusBadRequest, APIErrorResponse{Error: *entity.NewPortfolioError(
			entity.ErrKindInvalidAddress, "", address,
			"The 'address' query parameter is required.", nil)})
		return
	}

	portfolios, serviceErrors := h.portfolioService.ScanAllNetworks(ctx, address)

	if len(serviceErrors) == 1 && serviceErrors[0].Kind == entity.ErrKindInvalidAddress {
		c.JSON(http.StatusBadRequest, APIErrorResponse{Error: serviceErrors[0]})
		return
	}

	response := APIScanResponse{ServiceErrors: serviceErrors}
	response.Data.Portfolios = portfolios

	switch {
	case len(serviceErrors) > 0 && len(portfolios) == 0:
		response.StatusMessage = "Failed to retrieve any portfolios due to service errors."
	case len(serviceErrors) > 0:
		response.StatusMessage = "Portfolios retrieved. Some networks encountered errors."
	case len(portfolios) == 0:
		response.StatusMessage = "No positions found on any supported network."
	default:
		response.StatusMessage = "Portfolios retrieved successfully."
	}

	c.JSON(http.StatusOK, response)
}

// writeError maps the error taxonomy onto HTTP statuses with display-safe
// messages.
func (h *PortfolioHandler) writeError(c *gin.Context, networkName, address string, err error) {
	var pe *entity.PortfolioError
	if !errors.As(err, &pe) {
		h.logger.Error("Unclassified portfolio error", zap.Error(err))
		pe = entity.NewPortfolioError(entity.ErrKindAPIError, networkName, address,
			"An unexpected error occurred while fetching the portfolio.", err)
	}

	status := http.StatusBadGateway
	switch pe.Kind {
	case entity.ErrKindInvalidAddress, entity.ErrKindUnknownNetwork:
		status = http.StatusBadRequest
	case entity.ErrKindNetworkUnreachable, entity.ErrKindAPIError:
		status = http.StatusBadGateway
	}

	c.JSON(status, APIErrorResponse{Error: *pe})
}

func displayMessage(err error) string {
	var pe *entity.PortfolioError
	if errors.As(err, &pe) {
		return pe.Message
	}
	return err.Error()
}
