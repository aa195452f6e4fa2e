package common

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// ZeroAddress 原生币占位资产标识 (20 字节全零)
const ZeroAddress = "0000000000000000000000000000000000000000"

// EvmAssetIDLength EVM 资产标识长度 (20 字节 hex)
// 长度不等于 40 的 asset_id 视为占位, 不是真实外部代币
const EvmAssetIDLength = 40

// StripHexPrefix 去掉 0x 前缀
func StripHexPrefix(s string) string {
	return strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
}

// SameHash 比较两个哈希/地址是否相同 (忽略大小写与 0x 前缀)
func SameHash(a, b string) bool {
	return strings.EqualFold(StripHexPrefix(a), StripHexPrefix(b))
}

// IsZeroAddress asset_id 是否为原生币占位地址
func IsZeroAddress(assetID string) bool {
	return SameHash(assetID, ZeroAddress)
}

// IsEvmAssetID asset_id 是否为 EVM 20 字节地址
func IsEvmAssetID(assetID string) bool {
	return len(StripHexPrefix(assetID)) == EvmAssetIDLength
}

// HexToBytes 解析 hex 字符串 (容忍 0x 前缀)
func HexToBytes(s string) ([]byte, error) {
	b, err := hex.DecodeString(StripHexPrefix(s))
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return b, nil
}

// SwthAddressBytes 解码平台链 bech32 地址为原始字节
func SwthAddressBytes(addr string) ([]byte, error) {
	_, data, err := bech32.Decode(addr)
	if err != nil {
		return nil, fmt.Errorf("decode bech32 address: %w", err)
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, fmt.Errorf("convert bech32 bits: %w", err)
	}
	return raw, nil
}

// ParseUnits 按精度把十进制数量字符串转为最小单位
func ParseUnits(amount string, decimals int64) (*big.Int, error) {
	parts := strings.SplitN(amount, ".", 2)
	whole := parts[0]
	frac := ""
	if len(parts) == 2 {
		frac = parts[1]
	}
	if int64(len(frac)) > decimals {
		frac = frac[:decimals]
	}
	for int64(len(frac)) < decimals {
		frac += "0"
	}
	result, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount: %s", amount)
	}
	return result, nil
}

// FormatUnits 把最小单位数量格式化为十进制字符串
func FormatUnits(amount *big.Int, decimals int64) string {
	if amount == nil {
		return "0"
	}
	divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(decimals), nil)
	whole := new(big.Int).Div(amount, divisor)
	frac := new(big.Int).Mod(amount, divisor)
	if frac.Sign() == 0 {
		return whole.String()
	}
	fracStr := fmt.Sprintf("%0*d", int(decimals), frac)
	fracStr = strings.TrimRight(fracStr, "0")
	return fmt.Sprintf("%s.%s", whole.String(), fracStr)
}
