package stun

// Read-side accessors over a message buffer, symmetric with what the
// builder writes. The builder itself relies on them to track the
// header length field and to answer responses.

// Length returns the attribute-section byte count from the header
// length field. The 20-byte header is not included.
func Length(msg []byte) int { return int(readU16(msg[2:4])) }

func setLength(msg []byte, n int) { putU16(msg[2:4], uint16(n)) }

// MsgClass returns the message class encoded in the type field.
func MsgClass(msg []byte) Class {
	c, _ := decodeType(readU16(msg[:2]))
	return c
}

// MsgMethod returns the method encoded in the type field.
func MsgMethod(msg []byte) Method {
	_, m := decodeType(readU16(msg[:2]))
	return m
}

// TransactionID returns the 12-byte transaction ID.
func TransactionID(msg []byte) TxID {
	var id TxID
	copy(id[:], msg[8:HeaderLen])
	return id
}

// ForeachAttr walks the attribute section of msg in wire order,
// calling fn with each attribute's type and payload (padding
// stripped). Walking stops at the first error, which is returned.
func ForeachAttr(msg []byte, fn func(t AttrType, v []byte) error) error {
	mlen := Length(msg)
	if HeaderLen+mlen > len(msg) {
		return ErrMalformedAttrs
	}
	b := msg[HeaderLen : HeaderLen+mlen]
	for len(b) > 0 {
		if len(b) < 4 {
			return ErrMalformedAttrs
		}
		attrType := AttrType(readU16(b[:2]))
		attrLen := int(readU16(b[2:4]))
		attrLenWithPad := attrLen + padLen(attrLen)
		b = b[4:]
		if attrLenWithPad > len(b) {
			return ErrMalformedAttrs
		}
		if err := fn(attrType, b[:attrLen]); err != nil {
			return err
		}
		b = b[attrLenWithPad:]
	}
	return nil
}

// knownAttrs lists the attribute types this implementation
// understands, for unknown-attribute discovery.
var knownAttrs = map[AttrType]bool{
	AttrMappedAddress:     true,
	AttrUsername:          true,
	AttrMessageIntegrity:  true,
	AttrErrorCode:         true,
	AttrUnknownAttributes: true,
	AttrRealm:             true,
	AttrNonce:             true,
	AttrXorMappedAddress:  true,
	AttrPriority:          true,
	AttrUseCandidate:      true,
	AttrSoftware:          true,
	AttrAlternateServer:   true,
	AttrFingerprint:       true,
	AttrIceControlled:     true,
	AttrIceControlling:    true,
}

// FindUnknown returns the comprehension-required attribute types in
// msg that this implementation does not understand, in wire order.
func FindUnknown(msg []byte) []AttrType {
	var unknown []AttrType
	_ = ForeachAttr(msg, func(t AttrType, _ []byte) error {
		if t.comprehensionRequired() && !knownAttrs[t] {
			unknown = append(unknown, t)
		}
		return nil
	})
	return unknown
}
