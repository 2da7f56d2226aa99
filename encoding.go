package threshsig

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math/big"
)

// Encode returns the canonical binary form of the share: the 4-byte
// big-endian id, then secret, n, delta, verifier and groupVerifier in that
// order, each as big-endian two's-complement bytes preceded by a 4-byte
// big-endian byte count.
//
// The encoding contains the raw secret. It is holder-private: it exists so
// a party can persist its own share, and must never be sent to the combiner
// or any other party. Anything that leaves the holder should be the
// [KeyShare.Public] share instead.
//
// Encoding fails before the verifiers are attached, so an incomplete share
// can never be written out and misread as a complete one later
func (ks *KeyShare) Encode() ([]byte, error) {
	if !ks.ready() {
		return nil, fmt.Errorf("cannot encode share %d before its verifiers are attached", ks.id)
	}

	fields := [][]byte{
		bigBytes(ks.secret),
		bigBytes(ks.n),
		bigBytes(ks.delta),
		bigBytes(ks.verifier),
		bigBytes(ks.groupVerifier),
	}

	size := 4
	for _, f := range fields {
		size += 4 + len(f)
	}

	out := make([]byte, 0, size)
	out = binary.BigEndian.AppendUint32(out, uint32(ks.id))
	for _, f := range fields {
		out = binary.BigEndian.AppendUint32(out, uint32(len(f)))
		out = append(out, f...)
	}
	return out, nil
}

// EncodeString returns the canonical binary form wrapped in standard base64
// for transport or storage as text. It is as holder-private as [KeyShare.Encode]
func (ks *KeyShare) EncodeString() (string, error) {
	b, err := ks.Encode()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// DecodeKeyShare is the inverse of [KeyShare.Encode]. It fails on any buffer
// whose declared field lengths are inconsistent with its size, including
// trailing unconsumed bytes after the last field, and never returns a
// partially populated share
func DecodeKeyShare(encoded []byte) (*KeyShare, error) {
	buf := encoded
	if len(buf) < 4 {
		return nil, fmt.Errorf("key share is %d bytes: too short to hold an id", len(buf))
	}
	id := int(int32(binary.BigEndian.Uint32(buf)))
	buf = buf[4:]

	if id < 1 {
		return nil, fmt.Errorf("key share id %d is not a positive share index", id)
	}

	names := [5]string{"secret", "n", "delta", "verifier", "group verifier"}
	fields := make([]*big.Int, len(names))
	for i := range fields {
		if len(buf) < 4 {
			return nil, fmt.Errorf("key share is truncated before the %s length prefix", names[i])
		}
		fieldLen := int(int32(binary.BigEndian.Uint32(buf)))
		buf = buf[4:]

		if fieldLen < 0 || fieldLen > len(buf) {
			return nil, fmt.Errorf("key share declares %d bytes of %s but only %d bytes remain", fieldLen, names[i], len(buf))
		}
		fields[i] = bytesToBig(buf[:fieldLen])
		buf = buf[fieldLen:]
	}

	if len(buf) > 0 {
		return nil, fmt.Errorf("key share has %d trailing bytes after the group verifier", len(buf))
	}

	ks := NewKeyShare(id, fields[0], fields[1], fields[2])
	if err := ks.AttachVerifiers(fields[3], fields[4]); err != nil {
		return nil, err
	}
	return ks, nil
}

// DecodeKeyShareString is the inverse of [KeyShare.EncodeString]
func DecodeKeyShareString(encoded string) (*KeyShare, error) {
	b, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("key share is not valid base64: %s", err)
	}
	return DecodeKeyShare(b)
}
