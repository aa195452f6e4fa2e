package common

import "fmt"

// ChainConfig 单条外部链配置
type ChainConfig struct {
	RpcURL        string // 链 RPC 地址
	LockProxyAddr string // 托管 (lock proxy) 合约地址
	BalanceReader string // 批量余额读取合约地址
	PayerURL      string // payer/relayer 服务地址
	FeeURL        string // 费率服务地址
	ByteCodeHash  string // 充值钱包合约 bytecode 哈希 (CREATE2)
}

// NetworkConfig 一套部署环境的完整配置
type NetworkConfig struct {
	Network    string
	RestURL    string // 平台 REST API 地址
	PriceURL   string // 外部价格服务地址
	FeeAddress string // 平台收费地址 (20 字节 hex, 无前缀)
	Chains     map[Blockchain]ChainConfig
}

// NetworkConfigProvider 配置提供方, 由调用方注入
// 实现必须保证每次 GetConfig 返回当前生效的配置
type NetworkConfigProvider interface {
	GetConfig() NetworkConfig
}

// 静态环境配置
var (
	MainnetConfig = NetworkConfig{
		Network:    "mainnet",
		RestURL:    "https://api.tradehub.exchange",
		PriceURL:   "https://api.coingecko.com/api/v3",
		FeeAddress: "989761fb0c02aa9b7f5dec1b65d6c0a93ef92c62",
		Chains: map[Blockchain]ChainConfig{
			BlockchainEth: {
				RpcURL:        "https://ethereum-rpc.publicnode.com",
				LockProxyAddr: "0x9a016ce184a22dbf6c17daa59eb7d3140dbd1c54",
				BalanceReader: "0xe5e83cdba612672785d835714af26707f98030c3",
				PayerURL:      "https://eth-payer.tradehub.exchange",
				FeeURL:        "https://fees.tradehub.exchange",
				ByteCodeHash:  "0xcc54b00ae8f2e19bf01b1dfb38f42cbab0e9c85ccff41bfee81075fbb0a064e4",
			},
			BlockchainBsc: {
				RpcURL:        "https://bsc-rpc.publicnode.com",
				LockProxyAddr: "0xb5d4f343412dc8efb6ff599d790074d0f1e8d430",
				BalanceReader: "0x2b18c5e1edaa7e27d40fec8d0b7d96c5eefa35df",
				PayerURL:      "https://bsc-payer.tradehub.exchange",
				FeeURL:        "https://fees.tradehub.exchange",
				ByteCodeHash:  "0xca6a6383e66c8077b9cd7e1524b54ce5a4d2be2525501eb7e7a654b04fcc16c8",
			},
		},
	}

	DevnetConfig = NetworkConfig{
		Network:    "devnet",
		RestURL:    "https://dev-api.tradehub.exchange",
		PriceURL:   "https://api.coingecko.com/api/v3",
		FeeAddress: "988d4c0daf4e6faf703ea4050c2e2339e4ca3c86",
		Chains: map[Blockchain]ChainConfig{
			BlockchainEth: {
				RpcURL:        "https://ethereum-sepolia-rpc.publicnode.com",
				LockProxyAddr: "0x7e2b1aa1d1efa11a69d6db58b27bbb1929a4e4bc",
				BalanceReader: "0x7a0493b883f843ea30f2fb23b681a87e3541ad82",
				PayerURL:      "https://dev-eth-payer.tradehub.exchange",
				FeeURL:        "https://dev-fees.tradehub.exchange",
				ByteCodeHash:  "0x1f82a51eeadcdc0e0d2c8c23dd87826a8e1d2d56426afca1cf7b2a0a44e7e0d4",
			},
			BlockchainBsc: {
				RpcURL:        "https://bsc-testnet-rpc.publicnode.com",
				LockProxyAddr: "0x06e103b86b9c17654b4cbb0f291f9d0b3b9f0e0f",
				BalanceReader: "0x4d0a1d23aaba0f1e1e1a674d2a4971e1e5df1b57",
				PayerURL:      "https://dev-bsc-payer.tradehub.exchange",
				FeeURL:        "https://dev-fees.tradehub.exchange",
				ByteCodeHash:  "0x7bb1f5b8a5eb3ba0563e91500ac4cbbcbe9d0b14e4b298ee0e1b5868f2edbb44",
			},
		},
	}
)

// staticConfigProvider 固定返回一套静态配置
type staticConfigProvider struct {
	cfg NetworkConfig
}

func (p staticConfigProvider) GetConfig() NetworkConfig { return p.cfg }

// NewNetworkConfigProvider 按环境名创建静态配置提供方
func NewNetworkConfigProvider(network string) (NetworkConfigProvider, error) {
	switch network {
	case "mainnet":
		return staticConfigProvider{cfg: MainnetConfig}, nil
	case "devnet":
		return staticConfigProvider{cfg: DevnetConfig}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownNetwork, network)
	}
}
