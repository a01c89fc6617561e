package stun

import (
	"github.com/icemesh/wire/types/addr"
)

// Init writes a STUN header with no attributes into msg. The buffer
// length is the declared maximum message size and must hold at least
// the header.
func Init(msg []byte, c Class, m Method, id TxID) {
	if len(msg) < HeaderLen {
		panic("stun: buffer smaller than a STUN header")
	}
	putU16(msg[:2], encodeType(c, m))
	setLength(msg, 0)
	putU32(msg[4:8], MagicCookie)
	copy(msg[8:HeaderLen], id[:])
}

// InitRequest writes a request header with a fresh transaction ID.
func InitRequest(msg []byte, m Method) {
	Init(msg, ClassRequest, m, NewTxID())
}

// InitResponse writes a success-response header answering req: method
// and transaction ID are copied over. req must be a request; ans and
// req may alias.
func InitResponse(ans, req []byte) {
	if MsgClass(req) != ClassRequest {
		panic("stun: response to a non-request message")
	}
	Init(ans, ClassResponse, MsgMethod(req), TransactionID(req))
}

// InitError writes an error-response header answering req and appends
// the ERROR-CODE attribute for code. ans and req may alias.
func InitError(ans, req []byte, code ErrorCode) error {
	m, id := MsgMethod(req), TransactionID(req)
	Init(ans, ClassError, m, id)
	return AppendError(ans, code)
}

// InitErrorUnknown writes a 420 error response answering req,
// listing the comprehension-required attributes of req that this
// implementation does not understand. req must contain at least one.
// ans and req may alias.
func InitErrorUnknown(ans, req []byte) error {
	ids := FindUnknown(req)
	if len(ids) == 0 {
		panic("stun: no unknown attributes in request")
	}
	if err := InitError(ans, req, CodeUnknownAttribute); err != nil {
		return err
	}
	return AppendUnknown(ans, ids)
}

// appendReserve reserves space for one attribute: it writes the TLV
// header at the end of the attribute section, fills the padding, bumps
// the header length field and returns the (uninitialized) payload
// slot. The 24 in the size check is the 20-byte header plus the 4-byte
// TLV header, so the check is exactly whether the padded attribute fits;
// no room is held back for MESSAGE-INTEGRITY or FINGERPRINT, and Finish
// can still fail with ErrNoBufferSpace after caller attributes fit.
func appendReserve(msg []byte, t AttrType, length int) ([]byte, error) {
	mlen := Length(msg)
	if padLen(mlen) != 0 {
		panic("stun: attribute section not 32-bit aligned")
	}
	if length >= 0xffff {
		panic("stun: attribute payload too large")
	}

	msize := len(msg)
	if msize > HeaderLen+maxMessage {
		msize = HeaderLen + maxMessage
	}
	if mlen+24+length+padLen(length) > msize {
		return nil, ErrNoBufferSpace
	}

	off := HeaderLen + mlen
	putU16(msg[off:off+2], uint16(t))
	putU16(msg[off+2:off+4], uint16(length))
	for i := 0; i < padLen(length); i++ {
		msg[off+4+length+i] = padByte
	}
	setLength(msg, mlen+4+length+padLen(length))
	return msg[off+4 : off+4+length], nil
}

// AppendBytes appends an attribute with a copy of data as payload.
func AppendBytes(msg []byte, t AttrType, data []byte) error {
	p, err := appendReserve(msg, t, len(data))
	if err != nil {
		return err
	}
	copy(p, data)
	return nil
}

// AppendFlag appends a zero-length attribute.
func AppendFlag(msg []byte, t AttrType) error {
	return AppendBytes(msg, t, nil)
}

// AppendU32 appends a 32-bit attribute (network byte order on the wire).
func AppendU32(msg []byte, t AttrType, v uint32) error {
	p, err := appendReserve(msg, t, 4)
	if err != nil {
		return err
	}
	putU32(p, v)
	return nil
}

// AppendU64 appends a 64-bit attribute as two big-endian words.
func AppendU64(msg []byte, t AttrType, v uint64) error {
	p, err := appendReserve(msg, t, 8)
	if err != nil {
		return err
	}
	putU32(p[:4], uint32(v>>32))
	putU32(p[4:], uint32(v))
	return nil
}

// AppendString appends the bytes of s, without a trailing NUL. No
// UTF-8 validation is performed.
func AppendString(msg []byte, t AttrType, s string) error {
	return AppendBytes(msg, t, []byte(s))
}

// AppendAddr appends a MAPPED-ADDRESS-style attribute: one zero byte,
// one family byte (1 IPv4, 2 IPv6), the port and the address bytes,
// all network order.
func AppendAddr(msg []byte, t AttrType, a addr.Address) error {
	var fam byte
	var ab []byte
	switch {
	case a.Is4():
		fam = 1
		a4 := a.AddrPort().Addr().As4()
		ab = a4[:]
	case a.Is6():
		fam = 2
		a16 := a.IPv6()
		ab = a16[:]
	default:
		return ErrUnsupportedFamily
	}

	p, err := appendReserve(msg, t, 4+len(ab))
	if err != nil {
		return err
	}
	p[0] = 0
	p[1] = fam
	putU16(p[2:4], a.Port())
	copy(p[4:], ab)
	return nil
}

// AppendXorAddr appends an address attribute with the RFC 5389
// Section 15.2 XOR transform applied, keyed by msg's cookie and
// transaction ID.
func AppendXorAddr(msg []byte, t AttrType, a addr.Address) error {
	xa, err := XorAddress(msg, a)
	if err != nil {
		return err
	}
	return AppendAddr(msg, t, xa)
}

// AppendError appends the ERROR-CODE attribute for code: two zero
// bytes, the code divided into hundreds and remainder, then the reason
// phrase. code must be within 300..699.
func AppendError(msg []byte, code ErrorCode) error {
	if code < 300 || code > 699 {
		return ErrInvalidArgument
	}
	reason := code.Reason()
	p, err := appendReserve(msg, AttrErrorCode, 4+len(reason))
	if err != nil {
		return err
	}
	p[0], p[1] = 0, 0
	p[2] = byte(code / 100)
	p[3] = byte(code % 100)
	copy(p[4:], reason)
	return nil
}

// AppendUnknown appends the UNKNOWN-ATTRIBUTES attribute: the given
// types back to back as 16-bit words.
func AppendUnknown(msg []byte, ids []AttrType) error {
	p, err := appendReserve(msg, AttrUnknownAttributes, 2*len(ids))
	if err != nil {
		return err
	}
	for i, id := range ids {
		putU16(p[2*i:], uint16(id))
	}
	return nil
}
