package numtheory

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

var three = big.NewInt(3)

// IsProbablyPrime runs the Miller-Rabin test on n with the given number of rounds.
// Witnesses are drawn uniformly from [2, n-2] using random, which must be a
// cryptographically secure source when the result feeds key generation.
//
// A true result is wrong with probability at most 4^-rounds. A false result is certain.
func IsProbablyPrime(random io.Reader, n *big.Int, rounds int) (bool, error) {
	if rounds < 1 {
		return false, ErrInvalidRounds
	}
	if n.Cmp(two) == 0 || n.Cmp(three) == 0 {
		return true, nil
	}
	if n.Cmp(two) < 0 || n.Bit(0) == 0 {
		return false, nil
	}

	nMinusOne := new(big.Int).Sub(n, one)

	// n-1 = 2^r * d with d odd
	r := int(nMinusOne.TrailingZeroBits())
	d := new(big.Int).Rsh(nMinusOne, uint(r))

	// rand.Int yields [0, n-3), shifted by 2 to [2, n-2]
	witnessRange := new(big.Int).Sub(n, three)

	for i := 0; i < rounds; i++ {
		a, err := rand.Int(random, witnessRange)
		if err != nil {
			return false, fmt.Errorf("failed to draw Miller-Rabin witness: %w", err)
		}
		a.Add(a, two)

		passed, err := millerRabinRound(a, d, n, nMinusOne, r)
		if err != nil {
			return false, err
		}
		if !passed {
			return false, nil
		}
	}

	return true, nil
}

// millerRabinRound reports whether n passes a single round for witness a.
func millerRabinRound(a, d, n, nMinusOne *big.Int, r int) (bool, error) {
	x, err := ModExp(a, d, n)
	if err != nil {
		return false, err
	}
	if x.Cmp(one) == 0 || x.Cmp(nMinusOne) == 0 {
		return true, nil
	}

	for j := 1; j < r; j++ {
		x.Mul(x, x)
		x.Mod(x, n)
		if x.Cmp(nMinusOne) == 0 {
			return true, nil
		}
	}

	return false, nil
}
