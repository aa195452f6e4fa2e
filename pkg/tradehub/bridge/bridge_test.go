package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuail0/tradehub-sdk/pkg/tradehub/common"
)

func TestNewUnsupportedBlockchain(t *testing.T) {
	provider, err := common.NewNetworkConfigProvider("mainnet")
	require.NoError(t, err)

	for _, b := range []common.Blockchain{common.BlockchainNeo, common.BlockchainZil, "btc"} {
		_, err := New(b, provider, Config{})
		assert.ErrorIs(t, err, common.ErrUnsupportedBlockchain, string(b))
	}
}

func TestNewEvmFamilies(t *testing.T) {
	provider, err := common.NewNetworkConfigProvider("mainnet")
	require.NoError(t, err)

	for _, b := range []common.Blockchain{common.BlockchainEth, common.BlockchainBsc} {
		client, err := New(b, provider, Config{})
		require.NoError(t, err, string(b))
		assert.Equal(t, b, client.Blockchain())
		cfg := provider.GetConfig().Chains[b]
		assert.Equal(t, cfg.LockProxyAddr, client.GetLockProxyAddress())
		assert.Equal(t, cfg.PayerURL, client.GetPayerURL())
	}
}
