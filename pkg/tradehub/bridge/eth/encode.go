package eth

import (
	"fmt"
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// abiArg 单个调用参数, 静态参数只填 Static, 动态参数只填 Dynamic
type abiArg struct {
	Static  []byte // 32 字节定长值
	Dynamic []byte // 变长内容, 编码为 offset + tail
}

func staticArg(b []byte) abiArg  { return abiArg{Static: ethcommon.LeftPadBytes(b, 32)} }
func dynamicArg(b []byte) abiArg { return abiArg{Dynamic: b} }

func addressArg(addr string) abiArg {
	return staticArg(ethcommon.HexToAddress(addr).Bytes())
}

func uint256Arg(x *big.Int) abiArg {
	if x == nil {
		x = big.NewInt(0)
	}
	return staticArg(x.Bytes())
}

func methodIDOf(signature string) []byte {
	return crypto.Keccak256([]byte(signature))[:4]
}

// encodeCall 按 head/tail 规则编码方法调用
func encodeCall(signature string, args ...abiArg) []byte {
	methodID := methodIDOf(signature)

	headLen := len(args) * 32
	var tails [][]byte
	tailLen := 0
	for _, arg := range args {
		if arg.Dynamic != nil {
			tail := encodeBytesTail(arg.Dynamic)
			tails = append(tails, tail)
			tailLen += len(tail)
		}
	}

	data := make([]byte, 0, 4+headLen+tailLen)
	data = append(data, methodID...)

	offset := headLen
	tailIdx := 0
	for _, arg := range args {
		if arg.Dynamic != nil {
			data = append(data, ethcommon.LeftPadBytes(big.NewInt(int64(offset)).Bytes(), 32)...)
			offset += len(tails[tailIdx])
			tailIdx++
		} else {
			data = append(data, arg.Static...)
		}
	}
	for _, tail := range tails {
		data = append(data, tail...)
	}
	return data
}

// encodeBytesTail 编码动态 bytes 的 tail: 长度 + 内容右补零到 32 的倍数
func encodeBytesTail(b []byte) []byte {
	padded := (len(b) + 31) / 32 * 32
	tail := make([]byte, 0, 32+padded)
	tail = append(tail, ethcommon.LeftPadBytes(big.NewInt(int64(len(b))).Bytes(), 32)...)
	tail = append(tail, b...)
	tail = append(tail, make([]byte, padded-len(b))...)
	return tail
}

// encodeAddressArrayTail 编码 address[] 的 tail
func encodeAddressArrayTail(addrs []string) []byte {
	tail := make([]byte, 0, 32+len(addrs)*32)
	tail = append(tail, ethcommon.LeftPadBytes(big.NewInt(int64(len(addrs))).Bytes(), 32)...)
	for _, a := range addrs {
		tail = append(tail, ethcommon.LeftPadBytes(ethcommon.HexToAddress(a).Bytes(), 32)...)
	}
	return tail
}

// decodeUint256 解码单个 uint256 返回值
func decodeUint256(out []byte) *big.Int {
	if len(out) < 32 {
		return big.NewInt(0)
	}
	return new(big.Int).SetBytes(out[:32])
}

// decodeSlot 读取一个 offset/length 槽, 超出 int64 的值按畸形响应拒绝
func decodeSlot(out []byte, at int64) (int64, error) {
	word := new(big.Int).SetBytes(out[at : at+32])
	if !word.IsInt64() {
		return 0, fmt.Errorf("oversized slot value at %d", at)
	}
	return word.Int64(), nil
}

// decodeUint256Array 解码 uint256[] 返回值
func decodeUint256Array(out []byte) ([]*big.Int, error) {
	if len(out) < 64 {
		return nil, fmt.Errorf("short uint256[] response: %d bytes", len(out))
	}
	offset, err := decodeSlot(out, 0)
	if err != nil {
		return nil, fmt.Errorf("invalid uint256[] offset: %w", err)
	}
	if offset > int64(len(out))-32 {
		return nil, fmt.Errorf("invalid uint256[] offset: %d", offset)
	}
	length, err := decodeSlot(out, offset)
	if err != nil {
		return nil, fmt.Errorf("invalid uint256[] length: %w", err)
	}
	if length > (int64(len(out))-offset-32)/32 {
		return nil, fmt.Errorf("truncated uint256[] response")
	}

	values := make([]*big.Int, 0, length)
	for i := int64(0); i < length; i++ {
		start := offset + 32 + i*32
		values = append(values, new(big.Int).SetBytes(out[start:start+32]))
	}
	return values, nil
}

// decodeString 解码 string 返回值
func decodeString(out []byte) (string, error) {
	if len(out) < 64 {
		return "", fmt.Errorf("short string response: %d bytes", len(out))
	}
	offset, err := decodeSlot(out, 0)
	if err != nil {
		return "", fmt.Errorf("invalid string offset: %w", err)
	}
	if offset > int64(len(out))-32 {
		return "", fmt.Errorf("invalid string offset: %d", offset)
	}
	length, err := decodeSlot(out, offset)
	if err != nil {
		return "", fmt.Errorf("invalid string length: %w", err)
	}
	if length > int64(len(out))-offset-32 {
		return "", fmt.Errorf("truncated string response")
	}
	return string(out[offset+32 : offset+32+length]), nil
}
