package eth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math"
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/shuail0/tradehub-sdk/pkg/tradehub/common"
)

// depositOperationTag 充值授权摘要的操作标签
const depositOperationTag = "sendTokens"

// GetDepositContractAddress 通过托管合约推导确定性充值钱包地址
// 对固定的 (平台链身份, 链上身份, bytecode 哈希) 三元组结果稳定
func (c *Client) GetDepositContractAddress(ctx context.Context, swthAddress, ownerAddress string) (string, error) {
	swthBytes, err := common.SwthAddressBytes(swthAddress)
	if err != nil {
		return "", fmt.Errorf("decode swth address: %w", err)
	}
	bytecodeHash, err := common.HexToBytes(c.GetWalletBytecodeHash())
	if err != nil {
		return "", fmt.Errorf("decode bytecode hash: %w", err)
	}

	data := encodeCall("getWalletAddress(address,bytes,bytes32)",
		addressArg(ownerAddress),
		dynamicArg(swthBytes),
		staticArg(bytecodeHash))

	out, err := c.callContract(ctx, c.GetLockProxyAddress(), data)
	if err != nil {
		return "", fmt.Errorf("call getWalletAddress: %w", err)
	}
	if len(out) < 32 {
		return "", fmt.Errorf("short getWalletAddress response: %d bytes", len(out))
	}
	return ethcommon.BytesToAddress(out[12:32]).Hex(), nil
}

// GetDepositFeeAmount 查询本次充值的手续费
// 充值钱包尚未部署时叠加一次性建钱包费; 部署探测与后续提交不是原子的,
// 两步之间钱包被部署会导致少收建钱包费, 这是接受的竞态
func (c *Client) GetDepositFeeAmount(ctx context.Context, token common.Token, depositAddress string) (*big.Int, error) {
	if token.Blockchain != c.blockchain {
		return nil, fmt.Errorf("%w: token %s is on %s", common.ErrTokenChainMismatch, token.Denom, token.Blockchain)
	}

	params := struct {
		Denom string `url:"denom"`
	}{Denom: token.Denom}

	var quote common.FeeQuote
	if err := c.http.GetJSON(ctx, c.chainConfig().FeeURL+"/fees", &params, &quote); err != nil {
		return nil, fmt.Errorf("get fee quote: %w", err)
	}
	if quote.Details.Deposit.Fee == "" {
		return nil, fmt.Errorf("%w: %s", common.ErrNoDepositFee, token.Denom)
	}
	fee, ok := new(big.Int).SetString(quote.Details.Deposit.Fee, 10)
	if !ok {
		return nil, fmt.Errorf("invalid deposit fee: %s", quote.Details.Deposit.Fee)
	}

	code, err := c.ethClient.CodeAt(ctx, ethcommon.HexToAddress(depositAddress), nil)
	if err != nil {
		return nil, fmt.Errorf("check deposit wallet code: %w", err)
	}
	if len(code) == 0 && quote.Details.CreateWallet.Fee != "" {
		createFee, ok := new(big.Int).SetString(quote.Details.CreateWallet.Fee, 10)
		if !ok {
			return nil, fmt.Errorf("invalid create wallet fee: %s", quote.Details.CreateWallet.Fee)
		}
		fee = new(big.Int).Add(fee, createFee)
	}
	return fee, nil
}

// depositPayload payer 服务充值请求体
type depositPayload struct {
	OwnerAddress    string `json:"OwnerAddress"`
	SwthAddress     string `json:"SwthAddress"`
	AssetHash       string `json:"AssetHash"`
	TargetProxyHash string `json:"TargetProxyHash"`
	ToAssetHash     string `json:"ToAssetHash"`
	Amount          string `json:"Amount"`
	FeeAmount       string `json:"FeeAmount"`
	FeeAddress      string `json:"FeeAddress"`
	Nonce           string `json:"Nonce"`
	V               string `json:"V"`
	R               string `json:"R"`
	S               string `json:"S"`
}

// payerResponse payer 服务响应
type payerResponse struct {
	TransactionHash string `json:"transactionHash"`
}

// SendDeposit 免链上交易的授权式充值
// 余额低于 2 倍手续费时直接返回余额不足, 不调用 payer (安全余量, 非精确下限)
func (c *Client) SendDeposit(ctx context.Context, token common.TokenWithBalance, swthAddress, ownerAddress string, sign common.SignCallback) (*common.DepositResult, error) {
	depositAddress, err := c.GetDepositContractAddress(ctx, swthAddress, ownerAddress)
	if err != nil {
		return nil, err
	}
	feeAmount, err := c.GetDepositFeeAmount(ctx, token.Token, depositAddress)
	if err != nil {
		return nil, err
	}

	minBalance := new(big.Int).Mul(feeAmount, big.NewInt(2))
	if token.ExternalBalance == nil || token.ExternalBalance.Cmp(minBalance) < 0 {
		c.log.Debug("deposit balance below safety margin",
			zap.String("denom", token.Denom),
			zap.String("fee", feeAmount.String()))
		return &common.DepositResult{
			Status:         common.DepositStatusInsufficientBalance,
			DepositAddress: depositAddress,
			FeeAmount:      feeAmount,
		}, nil
	}
	amount := token.ExternalBalance

	targetProxyHash, err := common.SwthAddressBytes(token.Originator)
	if err != nil {
		return nil, fmt.Errorf("decode originator: %w", err)
	}
	swthBytes, err := common.SwthAddressBytes(swthAddress)
	if err != nil {
		return nil, fmt.Errorf("decode swth address: %w", err)
	}
	assetHash, err := common.HexToBytes(token.AssetID)
	if err != nil {
		return nil, fmt.Errorf("decode asset id: %w", err)
	}
	feeAddress, err := common.HexToBytes(c.provider.GetConfig().FeeAddress)
	if err != nil {
		return nil, fmt.Errorf("decode fee address: %w", err)
	}

	// 随机 nonce 只用于防止同一份授权被重放, 不是单调序号
	nonce, err := randomNonce()
	if err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	digest := depositDigest(assetHash, targetProxyHash, []byte(token.Denom), feeAddress, amount, feeAmount, nonce)
	sig, err := sign(digest)
	if err != nil {
		return nil, fmt.Errorf("sign deposit: %w", err)
	}
	if len(sig) != 65 {
		return nil, fmt.Errorf("invalid signature length: %d", len(sig))
	}
	v := sig[64]
	if v < 27 {
		v += 27
	}

	payload := depositPayload{
		OwnerAddress:    ownerAddress,
		SwthAddress:     hex.EncodeToString(swthBytes),
		AssetHash:       hex.EncodeToString(assetHash),
		TargetProxyHash: hex.EncodeToString(targetProxyHash),
		ToAssetHash:     hex.EncodeToString([]byte(token.Denom)),
		Amount:          amount.String(),
		FeeAmount:       feeAmount.String(),
		FeeAddress:      hex.EncodeToString(feeAddress),
		Nonce:           nonce.String(),
		V:               fmt.Sprintf("%d", v),
		R:               hex.EncodeToString(sig[0:32]),
		S:               hex.EncodeToString(sig[32:64]),
	}

	var resp payerResponse
	if err := c.http.PostJSON(ctx, c.GetPayerURL()+"/deposit", payload, &resp); err != nil {
		return nil, fmt.Errorf("submit deposit: %w", err)
	}

	return &common.DepositResult{
		Status:          common.DepositStatusSubmitted,
		DepositAddress:  depositAddress,
		FeeAmount:       feeAmount,
		TransactionHash: resp.TransactionHash,
	}, nil
}

// depositDigest 充值授权摘要: 对打包字段做 keccak, 再套以太坊签名前缀
func depositDigest(assetHash, targetProxyHash, toAssetHash, feeAddress []byte, amount, feeAmount, nonce *big.Int) []byte {
	packed := crypto.Keccak256(
		[]byte(depositOperationTag),
		assetHash,
		targetProxyHash,
		toAssetHash,
		feeAddress,
		ethcommon.LeftPadBytes(amount.Bytes(), 32),
		ethcommon.LeftPadBytes(feeAmount.Bytes(), 32),
		ethcommon.LeftPadBytes(nonce.Bytes(), 32),
	)
	prefix := fmt.Sprintf("\x19Ethereum Signed Message:\n%d", len(packed))
	return crypto.Keccak256([]byte(prefix), packed)
}

// randomNonce 从宽随机区间取 nonce
func randomNonce() (*big.Int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(math.MaxUint32))
	if err != nil {
		return nil, err
	}
	return new(big.Int).Add(n, big.NewInt(1)), nil
}
