package networkdefinition

import (
	"strings"

	"aave_portfolio/internal/app/port"
	"aave_portfolio/internal/domain/entity"

	"go.uber.org/zap"
)

// Predefined market definitions. The first four share chain id 1: Aave V3 on
// Ethereum runs several isolated market deployments.
var ( //nolint:gochecknoglobals // Global for definitions
	Ethereum = entity.NetworkDefinition{
		ChainID:       1,
		Name:          "Ethereum Mainnet",
		Identifier:    "ethereum",
		MarketAddress: "0x87870bca3f3fd6335c3f4ce8392d69350b4fa4e2",
	}
	EtherFi = entity.NetworkDefinition{
		ChainID:       1,
		Name:          "EtherFi Market",
		Identifier:    "etherfi",
		MarketAddress: "0x0AA97c284e98396202b6A04024F5E2c65026F3c0",
	}
	Lido = entity.NetworkDefinition{
		ChainID:       1,
		Name:          "Lido Market",
		Identifier:    "lido",
		MarketAddress: "0x4e033931ad43597d96D6bcc25c280717730B58B1",
	}
	HorizonRWA = entity.NetworkDefinition{
		ChainID:       1,
		Name:          "Horizon RWA Market",
		Identifier:    "horizon-rwa",
		MarketAddress: "0xAe05Cd22df81871bc7cC2a04BeCfb516bFe332C8",
	}
	Polygon = entity.NetworkDefinition{
		ChainID:       137,
		Name:          "Polygon PoS",
		Identifier:    "polygon",
		MarketAddress: "0x794a61358d6845594f94dc1db02a252b5b4814ad",
	}
	Avalanche = entity.NetworkDefinition{
		ChainID:       43114,
		Name:          "Avalanche C-Chain",
		Identifier:    "avalanche",
		MarketAddress: "0x794a61358d6845594f94dc1db02a252b5b4814ad",
	}
	Arbitrum = entity.NetworkDefinition{
		ChainID:       42161,
		Name:          "Arbitrum One",
		Identifier:    "arbitrum",
		MarketAddress: "0x794a61358d6845594f94dc1db02a252b5b4814ad",
	}
	Base = entity.NetworkDefinition{
		ChainID:       8453,
		Name:          "Base Mainnet",
		Identifier:    "base",
		MarketAddress: "0xA238Dd80C259a72e81d7e4664a9801593F98d1c5",
	}
	Optimism = entity.NetworkDefinition{
		ChainID:       10,
		Name:          "OP Mainnet",
		Identifier:    "optimism",
		MarketAddress: "0x794a61358d6845594f94dc1db02a252b5b4814ad",
	}
	Sonic = entity.NetworkDefinition{
		ChainID:       146,
		Name:          "Sonic Mainnet",
		Identifier:    "sonic",
		MarketAddress: "0x5362dBb1e601abF3a4c14c22ffEdA64042E5eAA3",
	}
	Metis = entity.NetworkDefinition{
		ChainID:       1088,
		Name:          "Metis Andromeda",
		Identifier:    "metis",
		MarketAddress: "0x90df02551bB792286e8D4f13E0e357b4Bf1D6a57",
	}
	Gnosis = entity.NetworkDefinition{
		ChainID:       100,
		Name:          "Gnosis Chain",
		Identifier:    "gnosis",
		MarketAddress: "0xb50201558B00496A145fE76f7424749556E326D8",
	}
	BNB = entity.NetworkDefinition{
		ChainID:       56,
		Name:          "BNB Smart Chain",
		Identifier:    "bnb",
		MarketAddress: "0x6807dc923806fE8Fd134338EABCA509979a7e0cB",
	}
	Scroll = entity.NetworkDefinition{
		ChainID:       534352,
		Name:          "Scroll Mainnet",
		Identifier:    "scroll",
		MarketAddress: "0x11fCfe756c05AD438e312a7fd934381537D3cFfe",
	}
	ZkSync = entity.NetworkDefinition{
		ChainID:       324,
		Name:          "ZkSync Era",
		Identifier:    "zksync",
		MarketAddress: "0x78e30497a3c7527d953c6B1E3541b021A98Ac43c",
	}
	Linea = entity.NetworkDefinition{
		ChainID:       59144,
		Name:          "Linea Mainnet",
		Identifier:    "linea",
		MarketAddress: "0xc47b8C00b0f69a36fa203Ffeac0334874574a8Ac",
	}
	Celo = entity.NetworkDefinition{
		ChainID:       42220,
		Name:          "Celo Mainnet",
		Identifier:    "celo",
		MarketAddress: "0x3E59A31363E2ad014dcbc521c4a0d5757d9f3402",
	}
	Soneium = entity.NetworkDefinition{
		ChainID:       1868,
		Name:          "Soneium Mainnet",
		Identifier:    "soneium",
		MarketAddress: "0xDd3d7A7d03D9fD9ef45f3E587287922eF65CA38B",
	}
)

// allDefinitions keeps the selection order shown to users.
var allDefinitions = []entity.NetworkDefinition{ //nolint:gochecknoglobals // Global for definitions
	Ethereum, EtherFi, Lido, HorizonRWA,
	Polygon, Avalanche, Arbitrum, Base, Optimism,
	Sonic, Metis, Gnosis, BNB, Scroll, ZkSync, Linea, Celo, Soneium,
}

// StaticProvider provides the fixed table of supported markets.
type StaticProvider struct {
	logger *zap.Logger
	byName map[string]entity.NetworkDefinition
}

// NewStaticProvider creates a provider over the built-in market table.
func NewStaticProvider(logger *zap.Logger) port.NetworkDefinitionProvider {
	byName := make(map[string]entity.NetworkDefinition, 2*len(allDefinitions))
	for _, def := range allDefinitions {
		byName[strings.ToLower(def.Name)] = def
		byName[strings.ToLower(def.Identifier)] = def
	}
	return &StaticProvider{
		logger: logger.Named("NetworkDefinitionProvider"),
		byName: byName,
	}
}

// GetAllNetworkDefinitions implements port.NetworkDefinitionProvider.
func (p *StaticProvider) GetAllNetworkDefinitions() []entity.NetworkDefinition {
	defs := make([]entity.NetworkDefinition, len(allDefinitions))
	copy(defs, allDefinitions)
	return defs
}

// GetNetworkDefinitionByName implements port.NetworkDefinitionProvider.
// Lookup is case-insensitive and accepts both the display name and the
// identifier.
func (p *StaticProvider) GetNetworkDefinitionByName(nameOrIdentifier string) (entity.NetworkDefinition, bool) {
	def, ok := p.byName[strings.ToLower(strings.TrimSpace(nameOrIdentifier))]
	if !ok {
		p.logger.Debug("Unknown network requested", zap.String("name", nameOrIdentifier))
	}
	return def, ok
}
