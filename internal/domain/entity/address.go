package entity

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ZeroAddress represents the Ethereum zero address.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// IsValidAddress reports whether addr is a well-formed EVM account identifier:
// a "0x" prefix followed by exactly 40 hex characters. Checksum correctness
// and on-chain existence are not verified.
func IsValidAddress(addr string) bool {
	if !strings.HasPrefix(addr, "0x") {
		return false
	}
	return common.IsHexAddress(addr)
}

// ShortenAddress returns the usual 0xabcd...1234 display form.
func ShortenAddress(addr string) string {
	if len(addr) < 10 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}
