//go:build unit
// +build unit

package cryptography

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yalmn/cryptomorph/internal/pkg/numtheory"
	"github.com/yalmn/cryptomorph/internal/pkg/testutil"
)

func TestSieve(t *testing.T) {
	primes := sieve(30)

	var got []int64
	for _, p := range primes {
		got = append(got, p.Int64())
	}
	assert.Equal(t, []int64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}, got)
}

func TestHasSmallFactor(t *testing.T) {
	assert.False(t, hasSmallFactor(big.NewInt(2)))
	assert.False(t, hasSmallFactor(big.NewInt(1999)))
	assert.True(t, hasSmallFactor(big.NewInt(1001)))
	assert.True(t, hasSmallFactor(new(big.Int).Mul(big.NewInt(1997), big.NewInt(104729))))
	assert.False(t, hasSmallFactor(big.NewInt(104729)))
}

func TestRandomCandidate(t *testing.T) {
	random := testutil.NewSeededReader(7)

	for _, bits := range []int{16, 33, 256} {
		c, err := randomCandidate(random, bits)
		require.NoError(t, err)
		assert.Equal(t, bits, c.BitLen())
		assert.Equal(t, uint(1), c.Bit(bits-2))
		assert.Equal(t, uint(1), c.Bit(0))
	}
}

func TestGeneratePrime(t *testing.T) {
	e := big.NewInt(65537)

	t.Run("FindsPrime", func(t *testing.T) {
		p, err := generatePrime(context.Background(), testutil.NewSeededReader(3), 128, 20, e)
		require.NoError(t, err)
		assert.Equal(t, 128, p.BitLen())
		assert.True(t, p.ProbablyPrime(20))

		pMinusOne := new(big.Int).Sub(p, big.NewInt(1))
		assert.True(t, numtheory.IsCoprime(e, pMinusOne))
	})

	t.Run("Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := generatePrime(ctx, testutil.NewSeededReader(3), 128, 20, e)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
