package threshsig

import (
	"bytes"
	"encoding/asn1"
	"encoding/pem"
	"fmt"
	"math/big"
)

const pemType = "RSA THRESHOLD PUBLIC KEY SHARE"

// A PublicKeyShare carries everything a peer needs to verify one party's
// signature shares, and nothing the holder needs to keep private. It is the
// default export format for a share; the full holder-private encoding only
// exists for the holder's own persistence
type PublicKeyShare struct {
	ID            int
	Verifier      *big.Int
	N             *big.Int
	Delta         *big.Int
	GroupVerifier *big.Int
}

// used exclusively as a placeholder for encoding-decoding
type publicKeyShare struct {
	ID            int
	Verifier      []byte
	N             []byte
	Delta         []byte
	GroupVerifier []byte
}

// Public returns the share's public half. Like signing, it requires the
// verifiers to have been attached
func (ks *KeyShare) Public() (*PublicKeyShare, error) {
	if !ks.ready() {
		return nil, fmt.Errorf("share %d has no public half before its verifiers are attached", ks.id)
	}

	return &PublicKeyShare{
		ID:            ks.id,
		Verifier:      ks.verifier,
		N:             ks.n,
		Delta:         ks.delta,
		GroupVerifier: ks.groupVerifier,
	}, nil
}

// Group returns the group parameters embedded in the public share, for
// passing to [Verify]
func (pub *PublicKeyShare) Group() *GroupParams {
	return &GroupParams{
		N:             pub.N,
		Delta:         pub.Delta,
		GroupVerifier: pub.GroupVerifier,
	}
}

// EncodePEM returns a PEM encoding of the public share data
func (pub *PublicKeyShare) EncodePEM() (string, error) {
	// we perform this conversion because asn1.Marshal cannot handle pointer values or unexported fields
	b, err := asn1.Marshal(publicKeyShare{
		ID:            pub.ID,
		Verifier:      pub.Verifier.Bytes(),
		N:             pub.N.Bytes(),
		Delta:         pub.Delta.Bytes(),
		GroupVerifier: pub.GroupVerifier.Bytes(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to DER-encode: %s", err)
	}

	keyPEM := new(bytes.Buffer)
	err = pem.Encode(keyPEM, &pem.Block{
		Type:  pemType,
		Bytes: b,
	})
	if err != nil {
		return "", fmt.Errorf("failed to PEM-encode: %s", err)
	}

	return keyPEM.String(), nil
}

// DecodePublicKeySharePEM returns public share data from a PEM encoding
func DecodePublicKeySharePEM(encoded string) (*PublicKeyShare, error) {
	block, rest := pem.Decode([]byte(encoded))
	if block == nil || block.Type != pemType || len(rest) > 0 {
		return nil, fmt.Errorf("failed to decode PEM block containing a public key share")
	}

	var pub publicKeyShare
	rest, err := asn1.Unmarshal(block.Bytes, &pub)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal DER-encoded public key share: %s", err)
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("public key share has %d trailing bytes of DER", len(rest))
	}

	return &PublicKeyShare{
		ID:            pub.ID,
		Verifier:      new(big.Int).SetBytes(pub.Verifier),
		N:             new(big.Int).SetBytes(pub.N),
		Delta:         new(big.Int).SetBytes(pub.Delta),
		GroupVerifier: new(big.Int).SetBytes(pub.GroupVerifier),
	}, nil
}
