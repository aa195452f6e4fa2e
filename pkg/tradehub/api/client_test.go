package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuail0/tradehub-sdk/pkg/tradehub/common"
)

func TestGetTokens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/get_tokens", r.URL.Path)
		tokens := []common.Token{
			{Denom: "swth", Symbol: "SWTH", Decimals: 8, Blockchain: common.BlockchainEth},
			{Denom: "usdt", Symbol: "USDT", Decimals: 6, Blockchain: common.BlockchainEth},
		}
		require.NoError(t, json.NewEncoder(w).Encode(tokens))
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{BaseURL: server.URL})
	tokens, err := client.GetTokens(context.Background())
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, "swth", tokens[0].Denom)
	assert.Equal(t, int64(6), tokens[1].Decimals)
}

func TestGetCoinMapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/get_coin_mapping", r.URL.Path)
		resp := CoinMappingResponse{Result: map[string]string{"busdt": "usdt"}}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{BaseURL: server.URL})
	mapping, err := client.GetCoinMapping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"busdt": "usdt"}, mapping)
}

func TestGetUSDValues(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/simple/price", r.URL.Path)
		assert.Equal(t, "switcheo,tether", r.URL.Query().Get("ids"))
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
		resp := map[string]map[string]float64{
			"switcheo": {"usd": 0.02},
			"tether":   {"usd": 1.0},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{PriceURL: server.URL})
	prices, err := client.GetUSDValues(context.Background(), []string{"switcheo", "tether"})
	require.NoError(t, err)
	assert.Equal(t, 0.02, prices["switcheo"])
	assert.Equal(t, 1.0, prices["tether"])
}

func TestGetTokensHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{BaseURL: server.URL})
	_, err := client.GetTokens(context.Background())
	assert.ErrorContains(t, err, "HTTP 500")
}
