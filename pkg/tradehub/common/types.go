package common

import "math/big"

// Blockchain 外部链标识
type Blockchain string

const (
	BlockchainEth Blockchain = "eth" // Ethereum 主网
	BlockchainBsc Blockchain = "bsc" // BNB Smart Chain
	BlockchainNeo Blockchain = "neo" // NEO
	BlockchainZil Blockchain = "zil" // Zilliqa
)

// Token 平台代币信息
type Token struct {
	Name            string     `json:"name"`             // 代币全称
	Symbol          string     `json:"symbol"`           // 展示符号
	Denom           string     `json:"denom"`            // 全局唯一标识 (小写)
	Decimals        int64      `json:"decimals"`         // 精度
	Blockchain      Blockchain `json:"blockchain"`       // 所属外部链
	ChainID         uint64     `json:"chain_id"`         // 链 ID
	AssetID         string     `json:"asset_id"`         // 链上合约/资产标识 (无 0x 前缀)
	IsActive        bool       `json:"is_active"`        // 是否启用
	IsCollateral    bool       `json:"is_collateral"`    // 是否可作抵押
	LockProxyHash   string     `json:"lock_proxy_hash"`  // 托管合约哈希
	DelegatedSupply string     `json:"delegated_supply"` // 委托供应量
	Originator      string     `json:"originator"`       // 注册方平台链地址
}

// TokenWithBalance 附带外部链余额的代币
type TokenWithBalance struct {
	Token
	ExternalBalance *big.Int // 持有人在外部链上的余额 (最小单位)
}

// TokenInfo 外部链上未注册资产的元信息
type TokenInfo struct {
	Decimals int64
	Name     string
	Symbol   string
}

// FeeQuote 费率服务响应
type FeeQuote struct {
	Details FeeDetails `json:"details"`
}

// FeeDetails 按操作拆分的费率明细
type FeeDetails struct {
	Deposit      FeeComponent `json:"deposit"`
	Withdrawal   FeeComponent `json:"withdrawal"`
	CreateWallet FeeComponent `json:"createWallet"`
}

// FeeComponent 单项费用 (十进制字符串, 最小单位)
type FeeComponent struct {
	Fee string `json:"fee"`
}

// PendingTx 已提交未确认的链上交易
type PendingTx struct {
	Hash string
}

// DepositStatus 充值结果状态
type DepositStatus string

const (
	DepositStatusSubmitted           DepositStatus = "submitted"            // 已提交给 payer
	DepositStatusInsufficientBalance DepositStatus = "insufficient_balance" // 余额不足, 未提交
)

// DepositResult 免交易充值结果
// 余额不足是预期内的业务结果, 通过状态返回而不是错误
type DepositResult struct {
	Status          DepositStatus
	DepositAddress  string
	FeeAmount       *big.Int
	TransactionHash string
}

// Signer 外部链签名人
type Signer interface {
	Address() string
	Sign(digest []byte) ([]byte, error)
}

// SignCallback 对 32 字节摘要签名, 返回 65 字节 [R||S||V] 签名
type SignCallback func(digest []byte) ([]byte, error)

// LockParams lock 充值参数
type LockParams struct {
	Token       Token
	Amount      *big.Int // 锁入数量 (最小单位)
	GasPrice    *big.Int
	GasLimit    uint64
	SwthAddress string // 平台链收款地址 (bech32)
	Signer      Signer
}
