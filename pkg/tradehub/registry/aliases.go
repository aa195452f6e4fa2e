package registry

// commonDenomAliases 历史 denom -> 规范 denom
// 同一资产曾以多个 denom 注册, 所有查询入口统一先做规范化
var commonDenomAliases = map[string]string{
	"swth-n": "swth", // NEO 时期的平台币
	"swth-e": "swth", // Ethereum 包装的平台币
	"swth-b": "swth", // BSC 包装的平台币
}

// tokenNameOverrides 展示名覆盖表
// 跨链包装代币按来源符号展示
var tokenNameOverrides = map[string]string{
	"busdt": "USDT (BEP-20)",
	"bwbtc": "WBTC (BEP-20)",
	"zusdt": "USDT (ZRC-2)",
}

// priceIDs 规范 denom -> 外部价格服务 id
// 未收录的 denom 直接用自身作为 id
var priceIDs = map[string]string{
	"swth": "switcheo",
	"eth":  "ethereum",
	"bnb":  "binancecoin",
	"btc":  "bitcoin",
	"wbtc": "wrapped-bitcoin",
	"usdt": "tether",
	"usdc": "usd-coin",
	"busd": "binance-usd",
	"neo":  "neo",
	"zil":  "zilliqa",
	"dai":  "dai",
}
