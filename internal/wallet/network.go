package wallet

import (
	"fmt"

	"github.com/gcash/bchd/chaincfg"
)

const (
	NetworkChipnet = "chipnet"
	NetworkMainnet = "mainnet"
)

// Params maps our network name to bchd chain parameters. Chipnet shares the
// testnet address encoding (bchtest: prefix).
func Params(network string) (*chaincfg.Params, error) {
	switch network {
	case NetworkMainnet:
		return &chaincfg.MainNetParams, nil
	case NetworkChipnet:
		return &chaincfg.TestNet3Params, nil
	default:
		return nil, fmt.Errorf("unknown network %q", network)
	}
}

// restNetwork is the network segment used in mainnet.cash wallet IDs.
func restNetwork(network string) string {
	if network == NetworkMainnet {
		return "mainnet"
	}

	return "testnet"
}

// ExplorerTxURL builds the block-explorer link embedded in confirmation
// emails.
func ExplorerTxURL(network, txID string) string {
	if network == NetworkMainnet {
		return "https://blockchair.com/bitcoin-cash/transaction/" + txID
	}

	return "https://chipnet.chaingraph.cash/tx/" + txID
}
