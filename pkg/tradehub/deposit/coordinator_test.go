package deposit

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuail0/tradehub-sdk/pkg/tradehub/common"
)

// fakeBridge 记录调用顺序的桩客户端
type fakeBridge struct {
	calls []string

	deriveErr error
	feeErr    error
	sendErr   error

	depositAddress string
	fee            *big.Int
	result         *common.DepositResult

	sentToken common.TokenWithBalance
}

func (f *fakeBridge) Blockchain() common.Blockchain { return common.BlockchainEth }

func (f *fakeBridge) GetExternalBalances(ctx context.Context, tokens []common.Token, holder string, whitelist []string) ([]common.TokenWithBalance, error) {
	return nil, nil
}

func (f *fakeBridge) ApproveAllowance(ctx context.Context, token common.Token, gasPrice *big.Int, gasLimit uint64, signer common.Signer) (*common.PendingTx, error) {
	return nil, nil
}

func (f *fakeBridge) CheckAllowance(ctx context.Context, token common.Token, owner, spender string) (*big.Int, error) {
	return nil, nil
}

func (f *fakeBridge) EnsureAllowance(ctx context.Context, token common.Token, minAmount, gasPrice *big.Int, gasLimit uint64, signer common.Signer) (*common.PendingTx, error) {
	return nil, nil
}

func (f *fakeBridge) LockDeposit(ctx context.Context, params common.LockParams) (*common.PendingTx, error) {
	return nil, nil
}

func (f *fakeBridge) GetDepositContractAddress(ctx context.Context, swthAddress, ownerAddress string) (string, error) {
	f.calls = append(f.calls, "derive")
	return f.depositAddress, f.deriveErr
}

func (f *fakeBridge) GetDepositFeeAmount(ctx context.Context, token common.Token, depositAddress string) (*big.Int, error) {
	f.calls = append(f.calls, "quote")
	return f.fee, f.feeErr
}

func (f *fakeBridge) SendDeposit(ctx context.Context, token common.TokenWithBalance, swthAddress, ownerAddress string, sign common.SignCallback) (*common.DepositResult, error) {
	f.calls = append(f.calls, "send")
	f.sentToken = token
	return f.result, f.sendErr
}

func (f *fakeBridge) RetrieveTokenInfo(ctx context.Context, assetAddress string) (*common.TokenInfo, error) {
	return nil, nil
}

func (f *fakeBridge) GetProviderURL() string          { return "" }
func (f *fakeBridge) GetLockProxyAddress() string     { return "" }
func (f *fakeBridge) GetBalanceReaderAddress() string { return "" }
func (f *fakeBridge) GetPayerURL() string             { return "" }
func (f *fakeBridge) GetWalletBytecodeHash() string   { return "" }

// fakeSigner 不做真实签名
type fakeSigner struct{}

func (fakeSigner) Address() string { return "0x1111111111111111111111111111111111111111" }
func (fakeSigner) Sign(digest []byte) ([]byte, error) { return make([]byte, 65), nil }

func TestDepositCallsInOrder(t *testing.T) {
	bridge := &fakeBridge{
		depositAddress: "0x00112233445566778899aabbccddeeff00112233",
		fee:            big.NewInt(100),
		result:         &common.DepositResult{Status: common.DepositStatusSubmitted, TransactionHash: "0xfeed"},
	}
	coordinator := New(bridge, nil)

	token := common.TokenWithBalance{
		Token:           common.Token{Denom: "usdt", Blockchain: common.BlockchainEth},
		ExternalBalance: big.NewInt(1000),
	}
	result, err := coordinator.Deposit(context.Background(), token, "swth1addr", "0xowner", fakeSigner{})
	require.NoError(t, err)
	assert.Equal(t, common.DepositStatusSubmitted, result.Status)
	assert.Equal(t, "0xfeed", result.TransactionHash)

	// 推导地址 -> 询价 -> 提交, 顺序不可调换
	assert.Equal(t, []string{"derive", "quote", "send"}, bridge.calls)
	assert.Equal(t, "usdt", bridge.sentToken.Denom)
}

func TestDepositDeriveError(t *testing.T) {
	bridge := &fakeBridge{deriveErr: errors.New("boom")}
	coordinator := New(bridge, nil)

	_, err := coordinator.Deposit(context.Background(), common.TokenWithBalance{}, "swth1addr", "0xowner", fakeSigner{})
	assert.ErrorContains(t, err, "derive deposit address")
	assert.Equal(t, []string{"derive"}, bridge.calls)
}

func TestDepositQuoteError(t *testing.T) {
	bridge := &fakeBridge{deriveErr: nil, feeErr: errors.New("boom")}
	coordinator := New(bridge, nil)

	_, err := coordinator.Deposit(context.Background(), common.TokenWithBalance{}, "swth1addr", "0xowner", fakeSigner{})
	assert.ErrorContains(t, err, "quote deposit fee")
	assert.Equal(t, []string{"derive", "quote"}, bridge.calls)
}

func TestAddressQR(t *testing.T) {
	png, err := AddressQR("0x00112233445566778899aabbccddeeff00112233", 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
