package api

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shuail0/tradehub-sdk/pkg/tradehub/common"
)

// ClientConfig REST 客户端配置
type ClientConfig struct {
	BaseURL     string // 平台 REST API 地址
	PriceURL    string // 外部价格服务地址
	Timeout     time.Duration
	ProxyString string
}

// Client 平台 REST API 客户端
type Client struct {
	client *common.HTTPClient
	price  *common.HTTPClient
}

// NewClient 创建 REST 客户端
func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = common.MainnetConfig.RestURL
	}
	if cfg.PriceURL == "" {
		cfg.PriceURL = common.MainnetConfig.PriceURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		client: common.NewHTTPClient(common.HTTPClientConfig{
			BaseURL:     cfg.BaseURL,
			Timeout:     cfg.Timeout,
			ProxyString: cfg.ProxyString,
		}),
		price: common.NewHTTPClient(common.HTTPClientConfig{
			BaseURL:     cfg.PriceURL,
			Timeout:     cfg.Timeout,
			ProxyString: cfg.ProxyString,
		}),
	}
}

// GetTokens 获取全量代币列表
func (c *Client) GetTokens(ctx context.Context) ([]common.Token, error) {
	var tokens []common.Token
	if err := c.client.GetJSON(ctx, "/get_tokens", nil, &tokens); err != nil {
		return nil, fmt.Errorf("get tokens: %w", err)
	}
	return tokens, nil
}

// CoinMappingResponse wrapped -> source 映射响应
type CoinMappingResponse struct {
	Result map[string]string `json:"result"`
}

// GetCoinMapping 获取 wrapped -> source 代币映射
func (c *Client) GetCoinMapping(ctx context.Context) (map[string]string, error) {
	var resp CoinMappingResponse
	if err := c.client.GetJSON(ctx, "/get_coin_mapping", nil, &resp); err != nil {
		return nil, fmt.Errorf("get coin mapping: %w", err)
	}
	return resp.Result, nil
}

// GetUSDValues 批量查询 USD 价格, 一次请求带全部 id
func (c *Client) GetUSDValues(ctx context.Context, ids []string) (map[string]float64, error) {
	params := struct {
		Ids          string `url:"ids"`
		VsCurrencies string `url:"vs_currencies"`
	}{
		Ids:          strings.Join(ids, ","),
		VsCurrencies: "usd",
	}

	var resp map[string]map[string]float64
	if err := c.price.GetJSON(ctx, "/simple/price", &params, &resp); err != nil {
		return nil, fmt.Errorf("get usd values: %w", err)
	}

	prices := make(map[string]float64, len(resp))
	for id, quote := range resp {
		prices[id] = quote["usd"]
	}
	return prices, nil
}
