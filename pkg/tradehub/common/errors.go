package common

import "errors"

// 配置/校验类错误, 全部在任何网络调用之前同步返回
var (
	ErrUnsupportedBlockchain = errors.New("unsupported blockchain")
	ErrUnknownNetwork        = errors.New("unknown network")
	ErrTokenChainMismatch    = errors.New("token does not belong to this blockchain")
	ErrNoDepositFee          = errors.New("no deposit fee configured for denom")
	ErrGasLimitTooLow        = errors.New("gas limit below minimum")
)
