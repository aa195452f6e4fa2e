package common

import (
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameHash(t *testing.T) {
	assert.True(t, SameHash("0xAbCd", "abcd"))
	assert.True(t, SameHash("abcd", "ABCD"))
	assert.False(t, SameHash("abcd", "abce"))
	assert.True(t, SameHash("0x"+ZeroAddress, ZeroAddress))
}

func TestIsZeroAddress(t *testing.T) {
	assert.True(t, IsZeroAddress(ZeroAddress))
	assert.True(t, IsZeroAddress("0x"+ZeroAddress))
	assert.False(t, IsZeroAddress("aaaabbbbccccddddeeeeffff0000111122223333"))
}

func TestIsEvmAssetID(t *testing.T) {
	assert.True(t, IsEvmAssetID("aaaabbbbccccddddeeeeffff0000111122223333"))
	assert.True(t, IsEvmAssetID("0xaaaabbbbccccddddeeeeffff0000111122223333"))
	assert.False(t, IsEvmAssetID("swth"))
	assert.False(t, IsEvmAssetID(""))
}

func TestSwthAddressBytes(t *testing.T) {
	raw := []byte{
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a,
		0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10, 0x11, 0x12, 0x13, 0x14,
	}
	converted, err := bech32.ConvertBits(raw, 8, 5, true)
	require.NoError(t, err)
	addr, err := bech32.Encode("swth", converted)
	require.NoError(t, err)

	decoded, err := SwthAddressBytes(addr)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)
}

func TestSwthAddressBytesInvalid(t *testing.T) {
	_, err := SwthAddressBytes("not-a-bech32-address")
	assert.Error(t, err)
}

func TestParseUnits(t *testing.T) {
	tests := []struct {
		amount   string
		decimals int64
		want     string
	}{
		{"1", 6, "1000000"},
		{"1.5", 6, "1500000"},
		{"0.000001", 6, "1"},
		{"1.2345678", 6, "1234567"}, // 超出精度截断
		{"100", 0, "100"},
	}
	for _, tt := range tests {
		got, err := ParseUnits(tt.amount, tt.decimals)
		require.NoError(t, err, tt.amount)
		assert.Equal(t, tt.want, got.String(), tt.amount)
	}

	_, err := ParseUnits("abc", 6)
	assert.Error(t, err)
}

func TestFormatUnits(t *testing.T) {
	assert.Equal(t, "1", FormatUnits(big.NewInt(1000000), 6))
	assert.Equal(t, "1.5", FormatUnits(big.NewInt(1500000), 6))
	assert.Equal(t, "0.000001", FormatUnits(big.NewInt(1), 6))
	assert.Equal(t, "0", FormatUnits(nil, 6))
}
