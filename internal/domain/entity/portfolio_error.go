package entity

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a fetch failure.
type ErrorKind string

const (
	// ErrKindInvalidAddress means the wallet address failed format validation.
	// No network call was made.
	ErrKindInvalidAddress ErrorKind = "invalid_address"
	// ErrKindNetworkUnreachable means a transport-level failure (DNS, timeout,
	// connection refused) persisted after the single permitted retry.
	ErrKindNetworkUnreachable ErrorKind = "network_unreachable"
	// ErrKindAPIError means the API responded with a non-success status or a
	// GraphQL-level error payload.
	ErrKindAPIError ErrorKind = "api_error"
	// ErrKindNoPositions means the API responded successfully but the account
	// holds no positions on the requested network. Not a failure of the fetch;
	// surfaced distinctly so callers can render an explicit empty state.
	ErrKindNoPositions ErrorKind = "no_positions"
	// ErrKindUnknownNetwork means the requested network is not in the
	// supported-market table.
	ErrKindUnknownNetwork ErrorKind = "unknown_network"
)

// ErrNoPositions is the sentinel for an account with no positions.
var ErrNoPositions = errors.New("account has no positions on this network")

// PortfolioError is a typed error produced while fetching positions for a
// wallet on a network. The Message is safe for display; Err keeps the
// underlying cause for logs.
type PortfolioError struct {
	Kind          ErrorKind `json:"kind"`
	NetworkName   string    `json:"networkName,omitempty"`
	WalletAddress string    `json:"walletAddress,omitempty"`
	Message       string    `json:"message"`
	Err           error     `json:"-"`
}

func (e *PortfolioError) Error() string {
	if e.NetworkName != "" {
		return fmt.Sprintf("%s (%s, %s): %s", e.Kind, e.NetworkName, e.WalletAddress, e.Message)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.WalletAddress, e.Message)
}

func (e *PortfolioError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrNoPositions against the typed wrapper.
func (e *PortfolioError) Is(target error) bool {
	return target == ErrNoPositions && e.Kind == ErrKindNoPositions
}

// NewPortfolioError builds a PortfolioError with display message msg.
func NewPortfolioError(kind ErrorKind, network, address, msg string, err error) *PortfolioError {
	return &PortfolioError{
		Kind:          kind,
		NetworkName:   network,
		WalletAddress: address,
		Message:       msg,
		Err:           err,
	}
}

// KindOf extracts the ErrorKind from err, or empty when err is not a
// PortfolioError.
func KindOf(err error) ErrorKind {
	var pe *PortfolioError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
