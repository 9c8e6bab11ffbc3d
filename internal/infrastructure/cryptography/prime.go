package cryptography

import (
	"context"
	"fmt"
	"io"
	"math/big"

	"github.com/yalmn/cryptomorph/internal/pkg/numtheory"
)

// sieveLimit bounds the trial divisors applied before Miller-Rabin.
const sieveLimit = 2000

var smallPrimes = sieve(sieveLimit)

// sieve returns all primes below limit (Eratosthenes).
func sieve(limit int) []*big.Int {
	composite := make([]bool, limit)
	var primes []*big.Int
	for i := 2; i < limit; i++ {
		if composite[i] {
			continue
		}
		primes = append(primes, big.NewInt(int64(i)))
		for j := i * i; j < limit; j += i {
			composite[j] = true
		}
	}
	return primes
}

// hasSmallFactor reports whether n is divisible by a sieve prime other than itself.
func hasSmallFactor(n *big.Int) bool {
	rem := new(big.Int)
	for _, p := range smallPrimes {
		if n.Cmp(p) == 0 {
			return false
		}
		if rem.Mod(n, p).Sign() == 0 {
			return true
		}
	}
	return false
}

// randomCandidate reads an odd integer of exactly bits bits whose two top bits are set,
// so the product of two candidates has exactly the sum of their lengths.
func randomCandidate(random io.Reader, bits int) (*big.Int, error) {
	buf := make([]byte, (bits+7)/8)
	if _, err := io.ReadFull(random, buf); err != nil {
		return nil, fmt.Errorf("failed to read prime candidate: %w", err)
	}

	// clear the excess high bits of the leading byte
	excess := uint(len(buf)*8 - bits)
	buf[0] &= byte(0xff >> excess)

	c := new(big.Int).SetBytes(buf)
	c.SetBit(c, bits-1, 1)
	c.SetBit(c, bits-2, 1)
	c.SetBit(c, 0, 1)
	return c, nil
}

// generatePrime searches random candidates until Miller-Rabin accepts one with the given
// rounds. Candidates p with gcd(e, p-1) != 1 are skipped so that e stays invertible.
func generatePrime(ctx context.Context, random io.Reader, bits, rounds int, e *big.Int) (*big.Int, error) {
	pMinusOne := new(big.Int)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		candidate, err := randomCandidate(random, bits)
		if err != nil {
			return nil, err
		}
		if hasSmallFactor(candidate) {
			continue
		}
		if !numtheory.IsCoprime(e, pMinusOne.Sub(candidate, big.NewInt(1))) {
			continue
		}

		ok, err := numtheory.IsProbablyPrime(random, candidate, rounds)
		if err != nil {
			return nil, err
		}
		if ok {
			return candidate, nil
		}
	}
}
