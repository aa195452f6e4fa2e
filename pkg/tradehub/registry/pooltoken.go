package registry

import (
	"regexp"
	"strconv"
	"strings"
)

// 池代币 denom 形如 {denomA}-{weightA}-{denomB}-{weightB}-lp{N}
var poolTokenRegex = regexp.MustCompile(`(?i)^([a-z0-9.-]+)-(\d+)-([a-z0-9.-]+)-(\d+)-lp\d+$`)

// poolTokenParts 池代币 denom 的拆解结果
type poolTokenParts struct {
	DenomA  string
	WeightA int64
	DenomB  string
	WeightB int64
}

// IsPoolToken 纯模式判断, 不依赖目录状态
func IsPoolToken(denom string) bool {
	return poolTokenRegex.MatchString(denom)
}

// parsePoolToken 拆解池代币 denom, 失败返回 false
func parsePoolToken(denom string) (poolTokenParts, bool) {
	m := poolTokenRegex.FindStringSubmatch(strings.ToLower(denom))
	if m == nil {
		return poolTokenParts{}, false
	}
	weightA, errA := strconv.ParseInt(m[2], 10, 64)
	weightB, errB := strconv.ParseInt(m[4], 10, 64)
	if errA != nil || errB != nil {
		return poolTokenParts{}, false
	}
	return poolTokenParts{
		DenomA:  m[1],
		WeightA: weightA,
		DenomB:  m[3],
		WeightB: weightB,
	}, true
}
