package stun

import (
	"crypto/hmac"
	"crypto/sha1"
)

// MessageIntegrity computes the 20-byte MESSAGE-INTEGRITY HMAC-SHA1
// for msg. It must be called after the MESSAGE-INTEGRITY and
// FINGERPRINT slots have been reserved: the header length field then
// counts both trailers, and the HMAC input is everything preceding the
// MESSAGE-INTEGRITY attribute, i.e. the first
//
//	HeaderLen + Length(msg) − 24 − 8
//
// bytes of msg. Calling it earlier is a programmer error.
func MessageIntegrity(msg []byte, key []byte) [sha1.Size]byte {
	mlen := Length(msg)
	if mlen < 32 {
		panic("stun: integrity and fingerprint slots not reserved")
	}

	mac := hmac.New(sha1.New, key)
	mac.Write(msg[:HeaderLen+mlen-32])

	var out [sha1.Size]byte
	copy(out[:], mac.Sum(nil))
	return out
}
