package eth

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"math/big"
	"strings"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureAllowanceSkipsWhenSufficient(t *testing.T) {
	rpc := newRPCServer(t, func(method string, params []json.RawMessage) string {
		require.Equal(t, "eth_call", method)
		return hexResult(pad32(1_000_000))
	})
	c := newTestClient(t, rpc.URL, "", "")
	signer, err := NewSigner(testPrivateKey)
	require.NoError(t, err)

	pending, err := c.EnsureAllowance(context.Background(), testToken(),
		big.NewInt(500), big.NewInt(1), 60000, signer)
	require.NoError(t, err)
	assert.Nil(t, pending)
	assert.Equal(t, int64(1), rpc.calls.Load())
}

func TestEnsureAllowanceApprovesWhenLow(t *testing.T) {
	var sent *types.Transaction
	rpc := newRPCServer(t, func(method string, params []json.RawMessage) string {
		switch method {
		case "eth_call":
			return hexResult(pad32(10))
		case "eth_getTransactionCount":
			return "0x0"
		case "eth_chainId":
			return "0x1"
		case "eth_sendRawTransaction":
			var raw string
			require.NoError(t, json.Unmarshal(params[0], &raw))
			b, err := hex.DecodeString(strings.TrimPrefix(raw, "0x"))
			require.NoError(t, err)
			tx := new(types.Transaction)
			require.NoError(t, tx.UnmarshalBinary(b))
			sent = tx
			return tx.Hash().Hex()
		}
		t.Errorf("unexpected method: %s", method)
		return "0x"
	})
	c := newTestClient(t, rpc.URL, "", "")
	signer, err := NewSigner(testPrivateKey)
	require.NoError(t, err)

	pending, err := c.EnsureAllowance(context.Background(), testToken(),
		big.NewInt(500), big.NewInt(1), 60000, signer)
	require.NoError(t, err)
	require.NotNil(t, pending)
	require.NotNil(t, sent)

	// approve 发给资产合约, spender 是 lock proxy, 额度拉满
	assert.Equal(t, ethcommon.HexToAddress("0x"+testAssetID), *sent.To())
	data := sent.Data()
	assert.Equal(t, methodIDOf("approve(address,uint256)"), data[:4])
	assert.Equal(t, ethcommon.HexToAddress(testLockProxy).Bytes(), data[16:36])
	assert.Equal(t, maxApproval, new(big.Int).SetBytes(data[36:68]))
}
