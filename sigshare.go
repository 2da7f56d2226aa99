package threshsig

import (
	"crypto"
	"math/big"
)

// GroupParams are the public parameters shared by every share of one group:
// the modulus n, delta = l!, and the group verification base. A proof or
// signature share is only meaningful relative to one fixed set of these
type GroupParams struct {
	N             *big.Int
	Delta         *big.Int
	GroupVerifier *big.Int
}

// A Proof is the transcript of one non-interactive proof that a partial
// signature was produced with the exponent committed to by the signer's
// verifier (a Fiat-Shamir rendering of a Chaum-Pedersen equality-of-logs
// proof)
type Proof struct {
	// Z is the response c*secret + r. It is deliberately unreduced: its
	// magnitude is what statistically hides c*secret
	Z *big.Int
	// C is the challenge, reduced mod n
	C *big.Int
	// ShareVerifier is the signer's public verification value
	ShareVerifier *big.Int
	// GroupVerifier is the group verification base the proof was built
	// against
	GroupVerifier *big.Int
}

// A SigShare is one party's partial signature over a message representative,
// with the proof a combiner needs to check it before combining. A combiner
// requires at least k valid shares with pairwise-distinct IDs
type SigShare struct {
	ID    int
	Sig   *big.Int
	Proof *Proof
}

// challenge computes the Fiat-Shamir challenge
//
//	c = H( v mod n || xtilde || vi mod n || xi^2 mod n || v' || x' ) mod n
//
// as a single digest over the six operands in exactly that order, each as
// its big-endian two's-complement bytes. Sign and Verify must agree on this
// byte for byte
func challenge(hashFn crypto.Hash, n, groupVerifier, xtilde, verifier, sigSquared, vprime, xprime *big.Int) *big.Int {
	md := hashFn.New()

	md.Write(bigBytes(new(big.Int).Mod(groupVerifier, n)))
	md.Write(bigBytes(xtilde))
	md.Write(bigBytes(new(big.Int).Mod(verifier, n)))
	md.Write(bigBytes(sigSquared))
	md.Write(bigBytes(vprime))
	md.Write(bigBytes(xprime))

	c := new(big.Int).SetBytes(md.Sum(nil))
	return c.Mod(c, n)
}

// Verify reports whether share is a valid partial signature over the message
// representative msg under the given group parameters, by recomputing the
// proof transcript and checking the challenge. hashFn must match the one the
// signer used.
//
// A false return is a plain reject, not a fault: an invalid share is
// expected input from a buggy or malicious peer, and the combiner handles it
// by excluding that share from the batch. This includes shares whose proof
// was built against different group parameters, carries out-of-range values,
// or contains a base with no inverse mod n.
func Verify(share *SigShare, hashFn crypto.Hash, msg []byte, group *GroupParams) bool {
	if share == nil || share.Sig == nil || share.Proof == nil || group == nil {
		return false
	}
	if group.N == nil || group.Delta == nil || group.GroupVerifier == nil {
		return false
	}
	p := share.Proof
	if p.Z == nil || p.C == nil || p.ShareVerifier == nil || p.GroupVerifier == nil {
		return false
	}
	if !hashFn.Available() {
		return false
	}

	// a proof built against another group's verification base proves
	// nothing here
	if p.GroupVerifier.Cmp(group.GroupVerifier) != 0 {
		return false
	}

	n := group.N
	if p.Z.Sign() < 0 || p.C.Sign() < 0 || p.C.Cmp(n) >= 0 {
		return false
	}

	x := new(big.Int).SetBytes(msg)
	x.Mod(x, n)

	fourDelta := new(big.Int).Mul(bigFour, group.Delta)
	xtilde := new(big.Int).Exp(x, fourDelta, n)

	sigSquared := new(big.Int).Exp(share.Sig, bigTwo, n)

	// v'' = v^z * vi^(-c) and x'' = xtilde^z * xi^(-c): for an honest
	// signer both reduce to the v^r and xtilde^r that were hashed, since
	// vi = v^secret and xi = xtilde^secret
	vprime, ok := expMulInverseExp(p.GroupVerifier, p.Z, p.ShareVerifier, p.C, n)
	if !ok {
		return false
	}
	xprime, ok := expMulInverseExp(xtilde, p.Z, share.Sig, p.C, n)
	if !ok {
		return false
	}

	c := challenge(hashFn, n, p.GroupVerifier, xtilde, p.ShareVerifier, sigSquared, vprime, xprime)
	return c.Cmp(p.C) == 0
}
