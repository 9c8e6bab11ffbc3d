// Package numtheory provides the number-theoretic building blocks of the RSA engine:
// modular exponentiation, the (extended) Euclidean algorithm, modular inverses, lcm,
// coprimality, Euler's totient and the Miller-Rabin probabilistic primality test.
//
// All functions operate on *big.Int values, never mutate their arguments and return
// results normalized into [0, m) wherever a modulus is involved.
package numtheory
