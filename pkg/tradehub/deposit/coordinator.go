package deposit

import (
	"context"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/shuail0/tradehub-sdk/pkg/tradehub/bridge"
	"github.com/shuail0/tradehub-sdk/pkg/tradehub/common"
)

// Coordinator 免链上交易充值的编排器
// 步骤顺序固定: 推导地址 -> 询价 -> 签名提交
// 费率取决于推导出的钱包是否已部署, 顺序不可调换
type Coordinator struct {
	client bridge.Client
	log    *zap.Logger
}

// New 创建 Coordinator
func New(client bridge.Client, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{client: client, log: logger}
}

// Deposit 执行一次完整的授权式充值
// 各步骤的失败原样上抛
func (c *Coordinator) Deposit(ctx context.Context, token common.TokenWithBalance, swthAddress, ownerAddress string, signer common.Signer) (*common.DepositResult, error) {
	depositAddress, err := c.client.GetDepositContractAddress(ctx, swthAddress, ownerAddress)
	if err != nil {
		return nil, fmt.Errorf("derive deposit address: %w", err)
	}

	feeAmount, err := c.client.GetDepositFeeAmount(ctx, token.Token, depositAddress)
	if err != nil {
		return nil, fmt.Errorf("quote deposit fee: %w", err)
	}
	c.log.Debug("deposit fee quoted",
		zap.String("denom", token.Denom),
		zap.String("address", depositAddress),
		zap.String("fee", feeAmount.String()))

	return c.client.SendDeposit(ctx, token, swthAddress, ownerAddress, signer.Sign)
}

// AddressQR 把充值钱包地址渲染为 QR PNG, 用于直接转账充值
func AddressQR(address string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(address, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
