package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams(t *testing.T) {
	mainnet, err := Params("mainnet")
	require.NoError(t, err)
	assert.Equal(t, "bitcoincash", mainnet.CashAddressPrefix)

	chipnet, err := Params("chipnet")
	require.NoError(t, err)
	assert.Equal(t, "bchtest", chipnet.CashAddressPrefix)

	_, err = Params("regtest-typo")
	assert.Error(t, err)
}

func TestExplorerTxURL(t *testing.T) {
	assert.Contains(t, ExplorerTxURL("mainnet", "abc123"), "abc123")
	assert.Contains(t, ExplorerTxURL("chipnet", "abc123"), "abc123")
	assert.NotEqual(t, ExplorerTxURL("mainnet", "abc123"), ExplorerTxURL("chipnet", "abc123"))
}
