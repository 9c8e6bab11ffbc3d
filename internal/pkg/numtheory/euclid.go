package numtheory

import (
	"fmt"
	"math/big"
)

// GCD returns the greatest common divisor of a and b using the iterative
// Euclidean algorithm. GCD(a, 0) is a.
func GCD(a, b *big.Int) *big.Int {
	x := new(big.Int).Abs(a)
	y := new(big.Int).Abs(b)
	r := new(big.Int)

	for y.Sign() != 0 {
		r.Mod(x, y)
		x, y, r = y, r, x
	}

	return x
}

// ExtendedGCD returns g, x and y such that a*x + b*y = g = gcd(a, b).
// The Bézout coefficients x and y may be negative.
func ExtendedGCD(a, b *big.Int) (g, x, y *big.Int) {
	oldR, r := new(big.Int).Set(a), new(big.Int).Set(b)
	oldS, s := big.NewInt(1), big.NewInt(0)
	oldT, t := big.NewInt(0), big.NewInt(1)

	q := new(big.Int)
	tmp := new(big.Int)

	for r.Sign() != 0 {
		q.Quo(oldR, r)

		// (oldR, r) = (r, oldR - q*r), likewise for s and t
		tmp.Mul(q, r)
		oldR, r = r, new(big.Int).Sub(oldR, tmp)

		tmp.Mul(q, s)
		oldS, s = s, new(big.Int).Sub(oldS, tmp)

		tmp.Mul(q, t)
		oldT, t = t, new(big.Int).Sub(oldT, tmp)
	}

	// Keep g non-negative when callers pass signed inputs.
	if oldR.Sign() < 0 {
		oldR.Neg(oldR)
		oldS.Neg(oldS)
		oldT.Neg(oldT)
	}

	return oldR, oldS, oldT
}

// ModInverse returns the unique r in [0, m) with a*r ≡ 1 (mod m).
// The boolean is false when gcd(a, m) != 1 or m is not positive, in which case no inverse exists.
func ModInverse(a, m *big.Int) (*big.Int, bool) {
	if m.Sign() <= 0 {
		return nil, false
	}

	g, x, _ := ExtendedGCD(a, m)
	if g.Cmp(one) != 0 {
		return nil, false
	}

	// big.Int.Mod is Euclidean, so the result is already in [0, m).
	return x.Mod(x, m), true
}

// LCM returns the least common multiple a*b / gcd(a, b).
func LCM(a, b *big.Int) (*big.Int, error) {
	if a.Sign() == 0 && b.Sign() == 0 {
		return nil, fmt.Errorf("lcm(0, 0): %w", ErrDivisionByZero)
	}

	g := GCD(a, b)
	product := new(big.Int).Mul(a, b)
	product.Abs(product)

	return product.Quo(product, g), nil
}

// IsCoprime reports whether gcd(a, b) == 1.
func IsCoprime(a, b *big.Int) bool {
	return GCD(a, b).Cmp(one) == 0
}

// Totient computes Euler's phi function by trial-division factorization up to √n.
// It is only practical for n with small factors; RSA computes (p-1)(q-1) directly instead.
func Totient(n *big.Int) *big.Int {
	if n.Sign() <= 0 {
		return big.NewInt(0)
	}

	result := new(big.Int).Set(n)
	rest := new(big.Int).Set(n)
	p := big.NewInt(2)

	sq := new(big.Int)
	rem := new(big.Int)
	pMinusOne := new(big.Int)

	for sq.Mul(p, p).Cmp(rest) <= 0 {
		if rem.Mod(rest, p).Sign() == 0 {
			// result = result / p * (p - 1)
			result.Quo(result, p)
			result.Mul(result, pMinusOne.Sub(p, one))
			for rem.Mod(rest, p).Sign() == 0 {
				rest.Quo(rest, p)
			}
		}
		p.Add(p, one)
	}

	if rest.Cmp(one) > 0 {
		result.Quo(result, rest)
		result.Mul(result, pMinusOne.Sub(rest, one))
	}

	return result
}
