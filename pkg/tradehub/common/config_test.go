package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNetworkConfigProvider(t *testing.T) {
	provider, err := NewNetworkConfigProvider("mainnet")
	require.NoError(t, err)
	cfg := provider.GetConfig()
	assert.Equal(t, "mainnet", cfg.Network)
	assert.Contains(t, cfg.Chains, BlockchainEth)
	assert.Contains(t, cfg.Chains, BlockchainBsc)

	provider, err = NewNetworkConfigProvider("devnet")
	require.NoError(t, err)
	assert.Equal(t, "devnet", provider.GetConfig().Network)

	_, err = NewNetworkConfigProvider("testnet")
	assert.ErrorIs(t, err, ErrUnknownNetwork)
}

func TestBuildQuery(t *testing.T) {
	params := struct {
		Denom string `url:"denom"`
		Limit int    `url:"limit,omitempty"`
		Skip  string `url:"-"`
	}{Denom: "usdt", Skip: "x"}

	assert.Equal(t, "denom=usdt", BuildQuery(params))

	params.Limit = 10
	assert.Equal(t, "denom=usdt&limit=10", BuildQuery(params))

	assert.Equal(t, "", BuildQuery(nil))
}
