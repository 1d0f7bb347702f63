package util

import (
	"math/rand"
)

// Alphabet without easily confused characters (0/O, 1/I/L)
const voucherCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// GenerateVoucherCode generates a random voucher code of the given length,
// optionally prefixed (e.g. "SALE-XXXXXXXX").
func GenerateVoucherCode(prefix string, length int) string {
	if length <= 0 {
		length = 8
	}

	code := make([]byte, length)
	for i := range code {
		code[i] = voucherCodeAlphabet[rand.Intn(len(voucherCodeAlphabet))]
	}

	if prefix == "" {
		return string(code)
	}
	return prefix + "-" + string(code)
}
