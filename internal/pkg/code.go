package pkg

import (
	cryptoRand "crypto/rand"
	"math/big"
)

var ten = big.NewInt(10)

// NewVerifyCode 生成 n 位数字验证码，逐位取 crypto/rand，随机源失败直接报错不降级
func NewVerifyCode(n int) (string, error) {
	digits := make([]byte, n)
	for i := range digits {
		x, err := cryptoRand.Int(cryptoRand.Reader, ten)
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + x.Int64())
	}
	return string(digits), nil
}
