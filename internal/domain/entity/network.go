package entity

// NetworkDefinition holds the configuration for a supported lending market.
// This structure is defined at the domain level to be used across application and infrastructure layers.
type NetworkDefinition struct {
	ChainID       uint64 `json:"chainId" yaml:"chainId"`
	Name          string `json:"name" yaml:"name"`
	Identifier    string `json:"identifier" yaml:"identifier"` // e.g. "ethereum", "polygon"
	MarketAddress string `json:"marketAddress" yaml:"marketAddress"`
}
