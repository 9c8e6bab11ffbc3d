package numtheory

import (
	"fmt"
	"math/big"
)

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
	two  = big.NewInt(2)
)

// ModExp computes base^exponent mod modulus with the square-and-multiply method.
// The exponent is scanned from its least to its most significant bit. The result lies in [0, modulus).
func ModExp(base, exponent, modulus *big.Int) (*big.Int, error) {
	if modulus.Sign() <= 0 {
		return nil, fmt.Errorf("modexp: %w", ErrInvalidModulus)
	}
	if base.Sign() < 0 || exponent.Sign() < 0 {
		return nil, fmt.Errorf("modexp: %w", ErrNegativeOperand)
	}

	result := new(big.Int).Mod(one, modulus)
	b := new(big.Int).Mod(base, modulus)

	for i := 0; i < exponent.BitLen(); i++ {
		if exponent.Bit(i) == 1 {
			result.Mul(result, b)
			result.Mod(result, modulus)
		}
		b.Mul(b, b)
		b.Mod(b, modulus)
	}

	return result, nil
}
