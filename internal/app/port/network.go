package port

import "aave_portfolio/internal/domain/entity"

// NetworkDefinitionProvider defines the interface for providing supported
// market definitions.
type NetworkDefinitionProvider interface {
	// GetAllNetworkDefinitions returns all supported market definitions as a slice.
	GetAllNetworkDefinitions() []entity.NetworkDefinition

	// GetNetworkDefinitionByName returns a specific market definition by its
	// display name or identifier. Returns the definition and true if found,
	// false otherwise.
	GetNetworkDefinitionByName(nameOrIdentifier string) (entity.NetworkDefinition, bool)
}
