package eth

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"github.com/shuail0/tradehub-sdk/pkg/tradehub/common"
)

// ClientConfig EVM 客户端配置
type ClientConfig struct {
	Blockchain  common.Blockchain
	Provider    common.NetworkConfigProvider
	Timeout     time.Duration
	ProxyString string
	Logger      *zap.Logger
}

// Client EVM 链托管操作客户端, 服务 eth 与 bsc 两个链家族
type Client struct {
	blockchain common.Blockchain
	provider   common.NetworkConfigProvider
	ethClient  *ethclient.Client
	http       *common.HTTPClient
	log        *zap.Logger

	chainIDMu sync.Mutex
	chainID   *big.Int
}

// NewClient 创建 EVM 客户端
// 链家族与配置校验在任何网络调用之前完成
func NewClient(cfg ClientConfig) (*Client, error) {
	switch cfg.Blockchain {
	case common.BlockchainEth, common.BlockchainBsc:
	default:
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedBlockchain, cfg.Blockchain)
	}
	if cfg.Provider == nil {
		return nil, fmt.Errorf("network config provider is required")
	}
	chainCfg, ok := cfg.Provider.GetConfig().Chains[cfg.Blockchain]
	if !ok {
		return nil, fmt.Errorf("%w: no chain config for %s", common.ErrUnsupportedBlockchain, cfg.Blockchain)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	ethClient, err := ethclient.Dial(chainCfg.RpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc: %w", err)
	}

	return &Client{
		blockchain: cfg.Blockchain,
		provider:   cfg.Provider,
		ethClient:  ethClient,
		http: common.NewHTTPClient(common.HTTPClientConfig{
			Timeout:     cfg.Timeout,
			ProxyString: cfg.ProxyString,
		}),
		log: cfg.Logger,
	}, nil
}

// Blockchain 本客户端绑定的链
func (c *Client) Blockchain() common.Blockchain {
	return c.blockchain
}

// chainConfig 当前生效的本链配置
func (c *Client) chainConfig() common.ChainConfig {
	return c.provider.GetConfig().Chains[c.blockchain]
}

// GetProviderURL 当前 RPC 地址
func (c *Client) GetProviderURL() string { return c.chainConfig().RpcURL }

// GetLockProxyAddress 当前 lock proxy 合约地址
func (c *Client) GetLockProxyAddress() string { return c.chainConfig().LockProxyAddr }

// GetBalanceReaderAddress 当前批量余额合约地址
func (c *Client) GetBalanceReaderAddress() string { return c.chainConfig().BalanceReader }

// GetPayerURL 当前 payer 服务地址
func (c *Client) GetPayerURL() string { return c.chainConfig().PayerURL }

// GetWalletBytecodeHash 当前充值钱包 bytecode 哈希
func (c *Client) GetWalletBytecodeHash() string { return c.chainConfig().ByteCodeHash }

// GetEthSigner 用 hex 私钥构造绑定本链的签名人
func (c *Client) GetEthSigner(privateKeyHex string) (*Signer, error) {
	return NewSigner(privateKeyHex)
}

// getChainID 懒加载并缓存链 ID
func (c *Client) getChainID(ctx context.Context) (*big.Int, error) {
	c.chainIDMu.Lock()
	defer c.chainIDMu.Unlock()
	if c.chainID != nil {
		return c.chainID, nil
	}
	chainID, err := c.ethClient.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("get chain id: %w", err)
	}
	c.chainID = chainID
	return chainID, nil
}

// callContract 只读合约调用
func (c *Client) callContract(ctx context.Context, contract string, data []byte) ([]byte, error) {
	to := ethcommon.HexToAddress(contract)
	return c.ethClient.CallContract(ctx, ethereum.CallMsg{
		To:   &to,
		Data: data,
	}, nil)
}

// GetExternalBalances 过滤本链代币并批量查询余额
// 过滤条件: 属于本链 + 托管哈希匹配当前 lock proxy + asset_id 是真实 20 字节地址
func (c *Client) GetExternalBalances(ctx context.Context, tokens []common.Token, holder string, whitelist []string) ([]common.TokenWithBalance, error) {
	lockProxy := c.GetLockProxyAddress()

	allowed := make(map[string]struct{}, len(whitelist))
	for _, d := range whitelist {
		allowed[d] = struct{}{}
	}

	var selected []common.Token
	var assets []string
	for _, t := range tokens {
		if t.Blockchain != c.blockchain {
			continue
		}
		if !common.SameHash(t.LockProxyHash, lockProxy) {
			continue
		}
		if !common.IsEvmAssetID(t.AssetID) {
			continue
		}
		if len(whitelist) > 0 {
			if _, ok := allowed[t.Denom]; !ok {
				continue
			}
		}
		selected = append(selected, t)
		assets = append(assets, t.AssetID)
	}
	if len(selected) == 0 {
		return nil, nil
	}

	out, err := c.callContract(ctx, c.GetBalanceReaderAddress(), encodeGetBalances(holder, assets))
	if err != nil {
		return nil, fmt.Errorf("call balance reader: %w", err)
	}
	balances, err := decodeUint256Array(out)
	if err != nil {
		return nil, fmt.Errorf("decode balances: %w", err)
	}
	if len(balances) != len(selected) {
		return nil, fmt.Errorf("balance count mismatch: got %d want %d", len(balances), len(selected))
	}

	result := make([]common.TokenWithBalance, 0, len(selected))
	for i, t := range selected {
		result = append(result, common.TokenWithBalance{
			Token:           t,
			ExternalBalance: balances[i],
		})
	}
	return result, nil
}

// encodeGetBalances 编码 getBalances(address account, address[] assets)
func encodeGetBalances(holder string, assets []string) []byte {
	methodID := methodIDOf("getBalances(address,address[])")
	data := make([]byte, 0, 4+64+32+len(assets)*32)
	data = append(data, methodID...)
	data = append(data, addressArg(holder).Static...)
	data = append(data, uint256Arg(big.NewInt(64)).Static...) // 数组偏移: head 两槽之后
	data = append(data, encodeAddressArrayTail(assets)...)
	return data
}

// CheckAllowance 只读查询 ERC20 授权额度
func (c *Client) CheckAllowance(ctx context.Context, token common.Token, owner, spender string) (*big.Int, error) {
	data := encodeCall("allowance(address,address)", addressArg(owner), addressArg(spender))
	out, err := c.callContract(ctx, token.AssetID, data)
	if err != nil {
		return nil, fmt.Errorf("call allowance: %w", err)
	}
	return decodeUint256(out), nil
}

// RetrieveTokenInfo 读取未注册资产的 decimals/name/symbol
func (c *Client) RetrieveTokenInfo(ctx context.Context, assetAddress string) (*common.TokenInfo, error) {
	decimalsOut, err := c.callContract(ctx, assetAddress, encodeCall("decimals()"))
	if err != nil {
		return nil, fmt.Errorf("call decimals: %w", err)
	}
	nameOut, err := c.callContract(ctx, assetAddress, encodeCall("name()"))
	if err != nil {
		return nil, fmt.Errorf("call name: %w", err)
	}
	symbolOut, err := c.callContract(ctx, assetAddress, encodeCall("symbol()"))
	if err != nil {
		return nil, fmt.Errorf("call symbol: %w", err)
	}

	name, err := decodeString(nameOut)
	if err != nil {
		return nil, fmt.Errorf("decode name: %w", err)
	}
	symbol, err := decodeString(symbolOut)
	if err != nil {
		return nil, fmt.Errorf("decode symbol: %w", err)
	}

	return &common.TokenInfo{
		Decimals: decodeUint256(decimalsOut).Int64(),
		Name:     name,
		Symbol:   symbol,
	}, nil
}
