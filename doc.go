/*
Package threshsig implements the signing side of Shoup's (k,l) threshold RSA
signature scheme: l parties each hold a share of an RSA private exponent, and
any k of them can produce a valid signature without the full exponent ever
existing in one place.

# Overview

This package covers the security-critical middle of the scheme: producing one
party's partial signature together with a zero-knowledge proof that it was
computed honestly, verifying such a share, and encoding a key share. The
dealer that distributes shares and the combiner that merges at least k
verified shares into the final RSA signature are external collaborators whose
inputs and outputs this package consumes and produces.

# A key share's life

A dealer constructs each party's share from the values it knows at dealing
time, and attaches the public verification values once it has computed them
for the whole group:

	share := threshsig.NewKeyShare(id, secret, n, delta)
	err := share.AttachVerifiers(verifier, groupVerifier)

Only a fully attached share can sign. Given the message representative em
(for interoperable RSA signatures, build it with [EncodePKCS1v15]), the
holder produces its partial signature and proof in one shot:

	sigShare, err := share.Sign(rand.Reader, crypto.SHA256, em)

Anyone holding the group parameters can then check the share without any
interaction with the signer:

	ok := threshsig.Verify(sigShare, crypto.SHA256, em, group)

A false result is a plain reject: the combiner excludes that share and
carries on with the rest of the batch.

# Proofs of correctness

Sign emits a Chaum-Pedersen style proof, made non-interactive with the
Fiat-Shamir transform, that the exponent inside the partial signature is the
same one committed to by the signer's public verifier. Soundness rests
entirely on the challenge being a collision-resistant hash of the full
transcript, and zero knowledge rests entirely on the randomness r being
drawn fresh, from a cryptographically secure source, at the mandated bit
length. Both the hash and the randomness source are injected by the caller;
the hash defaults in documentation and tests to SHA-256, and BLAKE2b-256 is
registered and selectable.

# Share encodings

A share has two encodings with very different audiences. The canonical
binary/base64 form ([KeyShare.Encode], [KeyShare.EncodeString]) contains the
raw secret: it is holder-private, for the holder's own persistence, and must
never be transmitted to the combiner or any other party. The public form
([KeyShare.Public], [PublicKeyShare.EncodePEM]) carries only the verification
values and group parameters that peers need, and is the default export path.

# Sources

	[1] Victor Shoup, "Practical Threshold Signatures", IBM Research RZ3121, 4/30/99
	    https://www.shoup.net/papers/thsig.pdf
*/
package threshsig
