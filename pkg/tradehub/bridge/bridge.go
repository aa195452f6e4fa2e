package bridge

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/shuail0/tradehub-sdk/pkg/tradehub/bridge/eth"
	"github.com/shuail0/tradehub-sdk/pkg/tradehub/common"
)

// Client 外部链托管操作客户端
// 每个支持的链家族一个实现, 操作集合对所有链一致
type Client interface {
	// Blockchain 本客户端绑定的链
	Blockchain() common.Blockchain

	// GetExternalBalances 过滤出本链上挂在当前 lock proxy 下的代币并批量查余额
	GetExternalBalances(ctx context.Context, tokens []common.Token, holder string, whitelist []string) ([]common.TokenWithBalance, error)

	// ApproveAllowance 把 lock proxy 的授权额度拉满
	ApproveAllowance(ctx context.Context, token common.Token, gasPrice *big.Int, gasLimit uint64, signer common.Signer) (*common.PendingTx, error)

	// CheckAllowance 只读查询授权额度
	CheckAllowance(ctx context.Context, token common.Token, owner, spender string) (*big.Int, error)

	// EnsureAllowance 额度不足 minAmount 时才发起 approve, 足够时返回 nil
	EnsureAllowance(ctx context.Context, token common.Token, minAmount, gasPrice *big.Int, gasLimit uint64, signer common.Signer) (*common.PendingTx, error)

	// LockDeposit 把资产锁入托管合约
	LockDeposit(ctx context.Context, params common.LockParams) (*common.PendingTx, error)

	// GetDepositContractAddress 推导 (平台链身份, 链上身份) 的确定性充值钱包地址
	GetDepositContractAddress(ctx context.Context, swthAddress, ownerAddress string) (string, error)

	// GetDepositFeeAmount 查询充值费, 钱包未部署时叠加一次性建钱包费
	GetDepositFeeAmount(ctx context.Context, token common.Token, depositAddress string) (*big.Int, error)

	// SendDeposit 免链上交易的授权式充值, 签名后提交给 payer
	SendDeposit(ctx context.Context, token common.TokenWithBalance, swthAddress, ownerAddress string, sign common.SignCallback) (*common.DepositResult, error)

	// RetrieveTokenInfo 读取未注册资产的元信息
	RetrieveTokenInfo(ctx context.Context, assetAddress string) (*common.TokenInfo, error)

	// 配置透传, 始终反映 provider 的当前配置
	GetProviderURL() string
	GetLockProxyAddress() string
	GetBalanceReaderAddress() string
	GetPayerURL() string
	GetWalletBytecodeHash() string
}

// Config 通用客户端配置
type Config struct {
	Timeout     time.Duration
	ProxyString string
	Logger      *zap.Logger
}

// New 按链家族创建客户端
// 不支持的链在这里失败, 不发起任何网络调用
func New(blockchain common.Blockchain, provider common.NetworkConfigProvider, cfg Config) (Client, error) {
	switch blockchain {
	case common.BlockchainEth, common.BlockchainBsc:
		return eth.NewClient(eth.ClientConfig{
			Blockchain:  blockchain,
			Provider:    provider,
			Timeout:     cfg.Timeout,
			ProxyString: cfg.ProxyString,
			Logger:      cfg.Logger,
		})
	default:
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedBlockchain, blockchain)
	}
}
