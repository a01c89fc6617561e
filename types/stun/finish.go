package stun

import (
	"github.com/LukaGiorgadze/gonull"
)

// Credentials carries the optional authentication material handed to
// FinishLong. Key is the raw HMAC key; with short-term credentials
// this is the password bytes.
type Credentials struct {
	Realm    gonull.Nullable[string]
	Username gonull.Nullable[string]
	Nonce    gonull.Nullable[[]byte]
	Key      []byte
}

// FinishLong closes a message: it appends, in this order, the REALM,
// USERNAME and NONCE attributes that are present, reserves
// MESSAGE-INTEGRITY when a key is given, reserves FINGERPRINT, then
// fills both trailers. It returns the total on-wire length of the
// message, header included.
//
// On ErrNoBufferSpace the attributes appended so far are left in the
// buffer and no length is returned; callers are expected to discard
// the message. Attributes appended by the caller must all precede the
// call.
func FinishLong(msg []byte, creds Credentials) (int, error) {
	if creds.Realm.Valid {
		if err := AppendString(msg, AttrRealm, creds.Realm.Val); err != nil {
			return 0, err
		}
	}
	if creds.Username.Valid {
		if err := AppendString(msg, AttrUsername, creds.Username.Val); err != nil {
			return 0, err
		}
	}
	if creds.Nonce.Valid {
		if err := AppendBytes(msg, AttrNonce, creds.Nonce.Val); err != nil {
			return 0, err
		}
	}

	var sha []byte
	if creds.Key != nil {
		var err error
		sha, err = appendReserve(msg, AttrMessageIntegrity, 20)
		if err != nil {
			return 0, err
		}
	}

	crc, err := appendReserve(msg, AttrFingerprint, 4)
	if err != nil {
		return 0, err
	}

	if sha != nil {
		mac := MessageIntegrity(msg, creds.Key)
		copy(sha, mac[:])
	}

	// The CRC covers everything up to its own payload, the
	// FINGERPRINT TLV header included.
	total := HeaderLen + Length(msg)
	putU32(crc, fingerPrint(msg[:total-4]))
	return total, nil
}

// FinishShort closes a message with short-term credentials: the
// password bytes are the HMAC key and no REALM is sent. An empty
// username or password and a nil nonce are treated as absent.
func FinishShort(msg []byte, username, password string, nonce []byte) (int, error) {
	var creds Credentials
	if username != "" {
		creds.Username = gonull.NewNullable(username)
	}
	if password != "" {
		creds.Key = []byte(password)
	}
	if nonce != nil {
		creds.Nonce = gonull.NewNullable(nonce)
	}
	return FinishLong(msg, creds)
}

// Finish closes a message without credentials: only FINGERPRINT is
// appended.
func Finish(msg []byte) (int, error) {
	return FinishLong(msg, Credentials{})
}
