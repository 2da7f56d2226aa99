package threshsig

import (
	"bytes"
	"encoding/binary"
	"encoding/pem"
	"fmt"
	"math/big"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func expectSharesEqual(decoded *KeyShare, original *KeyShare) {
	Expect(decoded.id).To(Equal(original.id), "id must survive the round trip")
	Expect(decoded.secret.Cmp(original.secret)).To(Equal(0), "secret must survive the round trip")
	Expect(decoded.n.Cmp(original.n)).To(Equal(0), "n must survive the round trip")
	Expect(decoded.delta.Cmp(original.delta)).To(Equal(0), "delta must survive the round trip")
	Expect(decoded.verifier.Cmp(original.verifier)).To(Equal(0), "verifier must survive the round trip")
	Expect(decoded.groupVerifier.Cmp(original.groupVerifier)).To(Equal(0), "group verifier must survive the round trip")
	Expect(decoded.signVal.Cmp(original.signVal)).To(Equal(0), "signVal must be rederived identically")
}

var _ = Describe("Key share encoding", func() {

	group := newTestGroup(testModulusBits, 3)
	share := group.newShare(2)

	Context("Round-tripping the canonical form", func() {
		It("Recovers every field from the binary encoding", func() {
			encoded, err := share.Encode()
			Expect(err).To(BeNil(), fmt.Sprintf("failed to encode share: %s", err))

			decoded, err := DecodeKeyShare(encoded)
			Expect(err).To(BeNil(), fmt.Sprintf("failed to decode share: %s", err))
			expectSharesEqual(decoded, share)
		})

		It("Recovers every field from the base64 encoding", func() {
			encoded, err := share.EncodeString()
			Expect(err).To(BeNil())

			decoded, err := DecodeKeyShareString(encoded)
			Expect(err).To(BeNil(), fmt.Sprintf("failed to decode share string: %s", err))
			expectSharesEqual(decoded, share)
		})

		It("Uses two's-complement field encodings", func() {
			// a value with its top bit set gets a leading zero byte, so it
			// cannot be misread as negative
			Expect(bigBytes(big.NewInt(0x80))).To(Equal([]byte{0x00, 0x80}))
			Expect(bigBytes(big.NewInt(0x7f))).To(Equal([]byte{0x7f}))
			Expect(bigBytes(bigZero)).To(Equal([]byte{0x00}))

			Expect(bytesToBig([]byte{0x00, 0x80}).Cmp(big.NewInt(0x80))).To(Equal(0))
			Expect(bytesToBig([]byte{0xff}).Cmp(big.NewInt(-1))).To(Equal(0))
		})
	})

	Context("Encoding an incomplete share", func() {
		It("Refuses to emit a record with no verifiers", func() {
			unattached := NewKeyShare(4, big.NewInt(99), group.n, group.delta)

			_, err := unattached.Encode()
			Expect(err).NotTo(BeNil(), "a truncated share record must never be written")
			_, err = unattached.EncodeString()
			Expect(err).NotTo(BeNil())
			_, err = unattached.Public()
			Expect(err).NotTo(BeNil())
		})
	})

	Context("Decoding malformed buffers", func() {
		var encoded []byte

		BeforeEach(func() {
			var err error
			encoded, err = share.Encode()
			Expect(err).To(BeNil())
		})

		It("Rejects a buffer truncated at any point", func() {
			for cut := 0; cut < len(encoded); cut++ {
				_, err := DecodeKeyShare(encoded[:cut])
				Expect(err).NotTo(BeNil(), fmt.Sprintf("decoding must fail when truncated to %d of %d bytes", cut, len(encoded)))
			}
		})

		It("Rejects trailing bytes after the last field", func() {
			extended := append(append([]byte{}, encoded...), 0x00)
			_, err := DecodeKeyShare(extended)
			Expect(err).NotTo(BeNil(), "trailing bytes must be rejected")
		})

		It("Rejects a length prefix that reads past the buffer end", func() {
			corrupt := append([]byte{}, encoded...)
			binary.BigEndian.PutUint32(corrupt[4:], uint32(len(corrupt)))
			_, err := DecodeKeyShare(corrupt)
			Expect(err).NotTo(BeNil(), "an oversized length prefix must be rejected")
		})

		It("Rejects a negative length prefix", func() {
			corrupt := append([]byte{}, encoded...)
			binary.BigEndian.PutUint32(corrupt[4:], 0xffffffff)
			_, err := DecodeKeyShare(corrupt)
			Expect(err).NotTo(BeNil())
		})

		It("Rejects a non-positive share id", func() {
			corrupt := append([]byte{}, encoded...)
			binary.BigEndian.PutUint32(corrupt[0:], 0)
			_, err := DecodeKeyShare(corrupt)
			Expect(err).NotTo(BeNil(), "share ids start at 1")
		})

		It("Rejects text that is not base64", func() {
			_, err := DecodeKeyShareString("not!base64@@")
			Expect(err).NotTo(BeNil())
		})
	})

	Context("Exporting the public share", func() {
		It("Round-trips through PEM", func() {
			pub, err := share.Public()
			Expect(err).To(BeNil())

			pemStr, err := pub.EncodePEM()
			Expect(err).To(BeNil(), fmt.Sprintf("failed to PEM-encode public share: %s", err))
			Expect(pemStr).To(ContainSubstring("RSA THRESHOLD PUBLIC KEY SHARE"))

			decoded, err := DecodePublicKeySharePEM(pemStr)
			Expect(err).To(BeNil(), fmt.Sprintf("failed to decode public share PEM: %s", err))

			Expect(decoded.ID).To(Equal(pub.ID))
			Expect(decoded.Verifier.Cmp(pub.Verifier)).To(Equal(0))
			Expect(decoded.N.Cmp(pub.N)).To(Equal(0))
			Expect(decoded.Delta.Cmp(pub.Delta)).To(Equal(0))
			Expect(decoded.GroupVerifier.Cmp(pub.GroupVerifier)).To(Equal(0))
		})

		It("Never contains the secret", func() {
			pub, err := share.Public()
			Expect(err).To(BeNil())

			pemStr, err := pub.EncodePEM()
			Expect(err).To(BeNil())

			block, _ := pem.Decode([]byte(pemStr))
			Expect(block).NotTo(BeNil())
			Expect(bytes.Contains(block.Bytes, share.secret.Bytes())).To(BeFalse(), "the public export must not leak the secret")
		})

		It("Rejects a PEM block of the wrong type", func() {
			pub, err := share.Public()
			Expect(err).To(BeNil())
			pemStr, err := pub.EncodePEM()
			Expect(err).To(BeNil())

			wrongType := strings.ReplaceAll(pemStr, "RSA THRESHOLD PUBLIC KEY SHARE", "RSA PRIVATE KEY")
			_, err = DecodePublicKeySharePEM(wrongType)
			Expect(err).NotTo(BeNil())
		})

		It("Rejects trailing data after the PEM block", func() {
			pub, err := share.Public()
			Expect(err).To(BeNil())
			pemStr, err := pub.EncodePEM()
			Expect(err).To(BeNil())

			_, err = DecodePublicKeySharePEM(pemStr + "garbage")
			Expect(err).NotTo(BeNil())
		})
	})
})
