package eth

import (
	"context"
	"fmt"
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/shuail0/tradehub-sdk/pkg/tradehub/common"
)

// MinLockGasLimit lock 交易的最小 gas 限制, 低于此值直接拒绝
const MinLockGasLimit = 150000

// maxApproval uint256 最大值, 一次授权到满
var maxApproval, _ = new(big.Int).SetString(
	"115792089237316195423570985008687907853269984665640564039457584007913129639935", 10)

// ApproveAllowance 把 lock proxy 的 ERC20 授权额度拉满
// 以 owner 当前交易计数作为防重放序号
func (c *Client) ApproveAllowance(ctx context.Context, token common.Token, gasPrice *big.Int, gasLimit uint64, signer common.Signer) (*common.PendingTx, error) {
	owner := ethcommon.HexToAddress(signer.Address())
	nonce, err := c.ethClient.PendingNonceAt(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("get nonce: %w", err)
	}

	data := encodeCall("approve(address,uint256)",
		addressArg(c.GetLockProxyAddress()),
		uint256Arg(maxApproval))

	tx := types.NewTransaction(nonce, ethcommon.HexToAddress(token.AssetID), big.NewInt(0), gasLimit, gasPrice, data)
	return c.signAndSend(ctx, tx, signer)
}

// EnsureAllowance 授权额度低于 minAmount 时才发起 approve
// 额度已够时返回 nil PendingTx, 不发任何交易
func (c *Client) EnsureAllowance(ctx context.Context, token common.Token, minAmount, gasPrice *big.Int, gasLimit uint64, signer common.Signer) (*common.PendingTx, error) {
	allowance, err := c.CheckAllowance(ctx, token, signer.Address(), c.GetLockProxyAddress())
	if err != nil {
		return nil, err
	}
	if minAmount != nil && allowance.Cmp(minAmount) >= 0 {
		return nil, nil
	}
	return c.ApproveAllowance(ctx, token, gasPrice, gasLimit, signer)
}

// LockDeposit 把资产锁入托管合约
// gas 校验在任何网络调用之前完成
func (c *Client) LockDeposit(ctx context.Context, params common.LockParams) (*common.PendingTx, error) {
	if params.GasLimit < MinLockGasLimit {
		return nil, fmt.Errorf("%w: %d < %d", common.ErrGasLimitTooLow, params.GasLimit, MinLockGasLimit)
	}
	if params.Token.Blockchain != c.blockchain {
		return nil, fmt.Errorf("%w: token %s is on %s", common.ErrTokenChainMismatch, params.Token.Denom, params.Token.Blockchain)
	}

	owner := ethcommon.HexToAddress(params.Signer.Address())
	nonce, err := c.ethClient.PendingNonceAt(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("get nonce: %w", err)
	}

	tx, err := c.buildLockTx(nonce, params)
	if err != nil {
		return nil, err
	}
	return c.signAndSend(ctx, tx, params.Signer)
}

// buildLockTx 构造 lock 交易
// 仅当锁入的是链原生币 (asset_id 为全零占位) 时, 交易 value 才等于锁入数量
func (c *Client) buildLockTx(nonce uint64, params common.LockParams) (*types.Transaction, error) {
	targetProxyHash, err := common.SwthAddressBytes(params.Token.Originator)
	if err != nil {
		return nil, fmt.Errorf("decode originator: %w", err)
	}
	toAddress, err := common.SwthAddressBytes(params.SwthAddress)
	if err != nil {
		return nil, fmt.Errorf("decode swth address: %w", err)
	}
	feeAddress, err := common.HexToBytes(c.provider.GetConfig().FeeAddress)
	if err != nil {
		return nil, fmt.Errorf("decode fee address: %w", err)
	}

	// 合约约定: feeAmount 固定为零, callAmount 冗余传一份锁入数量
	data := encodeCall("lock(address,bytes,bytes,bytes,address,uint256,uint256,uint256)",
		addressArg(params.Token.AssetID),
		dynamicArg(targetProxyHash),
		dynamicArg(toAddress),
		dynamicArg([]byte(params.Token.Denom)),
		staticArg(feeAddress),
		uint256Arg(params.Amount),
		uint256Arg(big.NewInt(0)),
		uint256Arg(params.Amount))

	value := big.NewInt(0)
	if common.IsZeroAddress(params.Token.AssetID) {
		value = params.Amount
	}

	return types.NewTransaction(nonce, ethcommon.HexToAddress(c.GetLockProxyAddress()),
		value, params.GasLimit, params.GasPrice, data), nil
}

// signAndSend EIP-155 签名并提交
func (c *Client) signAndSend(ctx context.Context, tx *types.Transaction, signer common.Signer) (*common.PendingTx, error) {
	chainID, err := c.getChainID(ctx)
	if err != nil {
		return nil, err
	}

	ethSigner := types.NewEIP155Signer(chainID)
	sig, err := signer.Sign(ethSigner.Hash(tx).Bytes())
	if err != nil {
		return nil, fmt.Errorf("sign tx: %w", err)
	}
	signed, err := tx.WithSignature(ethSigner, sig)
	if err != nil {
		return nil, fmt.Errorf("attach signature: %w", err)
	}

	if err := c.ethClient.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("send transaction: %w", err)
	}
	return &common.PendingTx{Hash: signed.Hash().Hex()}, nil
}
