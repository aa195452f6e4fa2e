package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPoolToken(t *testing.T) {
	tests := []struct {
		denom string
		want  bool
	}{
		{"swth-80-eth-20-lp1", true},
		{"a-50-b-50-lp1", true},
		{"A-50-B-50-LP1", true}, // 大小写不敏感
		{"ibc.token-50-usdt-50-lp12", true},
		{"swth", false},
		{"swth-80-eth-lp1", false},
		{"swth-80-eth-20-lp", false},
		{"swth-80-eth-20", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsPoolToken(tt.denom), tt.denom)
	}
}

func TestParsePoolToken(t *testing.T) {
	parts, ok := parsePoolToken("swth-80-eth-20-lp1")
	require.True(t, ok)
	assert.Equal(t, "swth", parts.DenomA)
	assert.Equal(t, int64(80), parts.WeightA)
	assert.Equal(t, "eth", parts.DenomB)
	assert.Equal(t, int64(20), parts.WeightB)

	_, ok = parsePoolToken("swth")
	assert.False(t, ok)
}
