package threshsig

import (
	"math/big"
)

// l1 is the protocol security margin in bits. The proof randomness r is
// drawn from [0, 2^(bitlen(n) + 3*l1)) so that z = c*secret + r
// statistically hides c*secret
const l1 = 128

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
	bigTwo  = big.NewInt(2)
	bigFour = big.NewInt(4)
)

// bigBytes returns the big-endian two's-complement encoding of x, the form
// used both for the canonical key share codec and for the challenge-hash
// input. Unlike big.Int.Bytes, a non-negative value whose top bit is set
// gets a leading zero byte, and zero encodes as a single zero byte
func bigBytes(x *big.Int) []byte {
	if x.Sign() == 0 {
		return []byte{0}
	}

	b := x.Bytes()
	if x.Sign() > 0 {
		if b[0]&0x80 != 0 {
			return append([]byte{0}, b...)
		}
		return b
	}

	// negative values never occur in the protocol, but the codec must
	// round-trip anything bytesToBig can produce: -x encodes as
	// 2^(8*len) + x
	byteLen := (x.BitLen() / 8) + 1
	shifted := new(big.Int).Lsh(bigOne, uint(8*byteLen))
	shifted.Add(shifted, x)
	out := make([]byte, byteLen)
	return shifted.FillBytes(out)
}

// bytesToBig is the inverse of bigBytes: a set top bit means the value is
// negative, and an empty slice decodes to zero
func bytesToBig(b []byte) *big.Int {
	x := new(big.Int).SetBytes(b)
	if len(b) > 0 && b[0]&0x80 != 0 {
		shifted := new(big.Int).Lsh(bigOne, uint(8*len(b)))
		x.Sub(x, shifted)
	}
	return x
}

// expMulInverseExp computes a^z * b^(-c) mod n, reporting ok = false when b
// has no inverse mod n. A non-invertible base means the proof is malformed
// (or the modulus is degenerate), so callers treat !ok as a reject
func expMulInverseExp(a, z, b, c, n *big.Int) (result *big.Int, ok bool) {
	bInv := new(big.Int).ModInverse(b, n)
	if bInv == nil {
		return nil, false
	}

	left := new(big.Int).Exp(a, z, n)
	right := new(big.Int).Exp(bInv, c, n)

	result = left.Mul(left, right)
	result.Mod(result, n)
	return result, true
}
