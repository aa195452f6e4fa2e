package eth

import (
	"fmt"
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"crypto/ecdsa"
)

// Signer 本地私钥签名人
type Signer struct {
	privateKey *ecdsa.PrivateKey
	address    ethcommon.Address
}

// NewSigner 从 hex 私钥创建签名人
func NewSigner(privateKeyHex string) (*Signer, error) {
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return &Signer{
		privateKey: privateKey,
		address:    crypto.PubkeyToAddress(privateKey.PublicKey),
	}, nil
}

// Address 签名人地址
func (s *Signer) Address() string {
	return s.address.Hex()
}

// Sign 对 32 字节摘要签名, 返回 [R||S||V]
func (s *Signer) Sign(digest []byte) ([]byte, error) {
	sig, err := crypto.Sign(digest, s.privateKey)
	if err != nil {
		return nil, fmt.Errorf("sign: %w", err)
	}
	return sig, nil
}
