package threshsig

import (
	"crypto"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	// register BLAKE2b so callers can select crypto.BLAKE2b_256 as the
	// challenge hash without their own import
	_ "golang.org/x/crypto/blake2b"
)

// A KeyShare is one party's share of the group's RSA signing key, as dealt
// in Shoup's (k,l) threshold scheme. It holds the party's secret exponent
// share alongside the public group parameters (modulus n, delta = l!) and,
// once attached, the public verification values for this share and for the
// group.
//
// A share has a two-phase lifecycle: the dealer constructs it with
// [NewKeyShare], then calls [KeyShare.AttachVerifiers] once it has computed
// the verification values for every share in the group. Signing and encoding
// fail until both phases are complete.
type KeyShare struct {
	id     int
	secret *big.Int

	n     *big.Int
	delta *big.Int

	// signVal = 4*delta*secret, the exponent actually applied when signing
	signVal *big.Int

	// nil until AttachVerifiers
	verifier      *big.Int
	groupVerifier *big.Int
}

// NewKeyShare creates a share with the values the dealer supplies at dealing
// time: the party's id within 1..l, its secret exponent share, the group
// modulus n, and delta = l!. The secret's range is the dealer's
// responsibility; construction never fails.
//
// The verifiers are not known yet and must be attached later with
// [KeyShare.AttachVerifiers].
func NewKeyShare(id int, secret, n, delta *big.Int) *KeyShare {
	signVal := new(big.Int).Mul(bigFour, delta)
	signVal.Mul(signVal, secret)

	return &KeyShare{
		id:      id,
		secret:  secret,
		n:       n,
		delta:   delta,
		signVal: signVal,
	}
}

// AttachVerifiers completes the share with the public verification values
// the dealer computed for it: verifier = groupVerifier^secret mod n, and the
// group verification base itself. It must be called exactly once
func (ks *KeyShare) AttachVerifiers(verifier, groupVerifier *big.Int) error {
	if verifier == nil || groupVerifier == nil {
		return fmt.Errorf("cannot attach nil verifiers to share %d", ks.id)
	}
	if ks.ready() {
		return fmt.Errorf("verifiers are already attached to share %d", ks.id)
	}

	ks.verifier = verifier
	ks.groupVerifier = groupVerifier
	return nil
}

func (ks *KeyShare) ready() bool {
	return ks.verifier != nil && ks.groupVerifier != nil
}

func (ks *KeyShare) ID() int {
	return ks.id
}

func (ks *KeyShare) N() *big.Int {
	return ks.n
}

func (ks *KeyShare) Delta() *big.Int {
	return ks.delta
}

// Verifier returns this share's public verification value, or nil if the
// verifiers have not been attached
func (ks *KeyShare) Verifier() *big.Int {
	return ks.verifier
}

// GroupVerifier returns the group's public verification base, or nil if the
// verifiers have not been attached
func (ks *KeyShare) GroupVerifier() *big.Int {
	return ks.groupVerifier
}

// Sign produces this party's partial signature x^(4*delta*secret) mod n over
// the message representative msg, together with a non-interactive proof that
// the exponent used is the one committed to by this share's verifier.
// Refer to Shoup pg. 8.
//
// msg must already be a hash-derived representative of the message (see
// [EncodePKCS1v15]); Sign interprets it as a non-negative big-endian integer
// and reduces it mod n, but performs no hashing of the message itself.
// hashFn is the challenge hash for the proof transcript and must be the same
// on the verifying side; it must be available, else Sign fails immediately.
// random must be a cryptographically secure source such as crypto/rand.Reader
// and is read once per call.
func (ks *KeyShare) Sign(random io.Reader, hashFn crypto.Hash, msg []byte) (*SigShare, error) {
	if !ks.ready() {
		return nil, fmt.Errorf("cannot sign with share %d: verifiers have not been attached", ks.id)
	}
	if !hashFn.Available() {
		return nil, fmt.Errorf("challenge hash %v is not linked into this binary", hashFn)
	}

	x := new(big.Int).SetBytes(msg)
	x.Mod(x, ks.n)

	// r <- [0, 2^(bitlen(n) + 3*l1))
	rBound := new(big.Int).Lsh(bigOne, uint(ks.n.BitLen()+3*l1))
	r, err := rand.Int(random, rBound)
	if err != nil {
		return nil, fmt.Errorf("failed to draw proof randomness: %s", err)
	}

	// xtilde = x^(4*delta) uses only public data
	fourDelta := new(big.Int).Mul(bigFour, ks.delta)
	xtilde := new(big.Int).Exp(x, fourDelta, ks.n)

	vprime := new(big.Int).Exp(ks.groupVerifier, r, ks.n)
	xprime := new(big.Int).Exp(xtilde, r, ks.n)

	sig := new(big.Int).Exp(x, ks.signVal, ks.n)
	sigSquared := new(big.Int).Exp(sig, bigTwo, ks.n)

	c := challenge(hashFn, ks.n, ks.groupVerifier, xtilde, ks.verifier, sigSquared, vprime, xprime)

	// z = c*secret + r over the integers; reducing it mod anything would
	// break the proof
	z := new(big.Int).Mul(c, ks.secret)
	z.Add(z, r)

	return &SigShare{
		ID:  ks.id,
		Sig: sig,
		Proof: &Proof{
			Z:             z,
			C:             c,
			ShareVerifier: ks.verifier,
			GroupVerifier: ks.groupVerifier,
		},
	}, nil
}
