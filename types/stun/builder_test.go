package stun

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icemesh/wire/types/addr"
)

var testTxID = TxID{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}

func newRequest(t *testing.T, size int) []byte {
	t.Helper()
	buf := make([]byte, size)
	Init(buf, ClassRequest, MethodBinding, testTxID)
	return buf
}

func TestInitRequest_Header(t *testing.T) {
	old := DefaultTxIDSource
	DefaultTxIDSource = &CounterTxIDSource{}
	defer func() { DefaultTxIDSource = old }()

	buf := make([]byte, 128)
	InitRequest(buf, MethodBinding)

	assert.Equal(t, []byte{0x00, 0x01, 0x00, 0x00, 0x21, 0x12, 0xA4, 0x42}, buf[:8])
	assert.Equal(t, 0, Length(buf))
	assert.Equal(t, ClassRequest, MsgClass(buf))
	assert.Equal(t, MethodBinding, MsgMethod(buf))
	assert.True(t, Is(buf))

	first := TransactionID(buf)
	InitRequest(buf, MethodBinding)
	assert.NotEqual(t, first, TransactionID(buf))
}

func TestInitResponse_CopiesRequest(t *testing.T) {
	req := newRequest(t, 128)
	ans := make([]byte, 128)

	InitResponse(ans, req)

	assert.Equal(t, ClassResponse, MsgClass(ans))
	assert.Equal(t, MsgMethod(req), MsgMethod(ans))
	assert.Equal(t, TransactionID(req), TransactionID(ans))
	assert.Equal(t, 0, Length(ans))
}

func TestInitResponse_InPlace(t *testing.T) {
	req := newRequest(t, 128)

	InitResponse(req, req)

	assert.Equal(t, ClassResponse, MsgClass(req))
	assert.Equal(t, MethodBinding, MsgMethod(req))
	assert.Equal(t, testTxID, TransactionID(req))
}

func TestInitResponse_RejectsNonRequest(t *testing.T) {
	ans := make([]byte, 128)
	Init(ans, ClassResponse, MethodBinding, testTxID)

	assert.Panics(t, func() { InitResponse(make([]byte, 128), ans) })
}

func TestEncodeType_RoundTrip(t *testing.T) {
	for _, c := range []Class{ClassRequest, ClassIndication, ClassResponse, ClassError} {
		for _, m := range []Method{MethodBinding, MethodSharedSecret, 0x0ABC, 0x0FFF} {
			gotC, gotM := decodeType(encodeType(c, m))
			assert.Equal(t, c, gotC)
			assert.Equal(t, m, gotM)
		}
	}
}

func TestPadLen(t *testing.T) {
	for n := 0; n < 64; n++ {
		p := padLen(n)
		assert.GreaterOrEqual(t, p, 0)
		assert.LessOrEqual(t, p, 3)
		assert.Zero(t, (n+p)%4)
	}
}

func TestAppendU32_Wire(t *testing.T) {
	buf := newRequest(t, 128)

	require.NoError(t, AppendU32(buf, AttrPriority, 0xDEADBEEF))

	assert.Equal(t, []byte{0x00, 0x24, 0x00, 0x04, 0xDE, 0xAD, 0xBE, 0xEF}, buf[20:28])
	assert.Equal(t, 8, Length(buf))
}

func TestAppendU64_Wire(t *testing.T) {
	buf := newRequest(t, 128)

	require.NoError(t, AppendU64(buf, AttrIceControlled, 0x0102030405060708))

	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}, buf[24:32])
	assert.Equal(t, 12, Length(buf))
}

func TestAppendString_Padding(t *testing.T) {
	buf := newRequest(t, 128)

	require.NoError(t, AppendString(buf, AttrSoftware, "gauge"))

	assert.Equal(t, 12, Length(buf))
	assert.Equal(t, []byte("gauge"), buf[24:29])
	assert.Equal(t, []byte{padByte, padByte, padByte}, buf[29:32])
}

func TestAppendFlag_ZeroLength(t *testing.T) {
	buf := newRequest(t, 128)

	require.NoError(t, AppendFlag(buf, AttrUseCandidate))

	assert.Equal(t, 4, Length(buf))
	assert.Equal(t, []byte{0x00, 0x25, 0x00, 0x00}, buf[20:24])
}

func TestAppend_NoSpaceLeavesLength(t *testing.T) {
	buf := newRequest(t, 30)

	// 0 + 24 + 4 fits in 30 bytes, the next attribute does not.
	require.NoError(t, AppendU32(buf, AttrPriority, 1))
	mlen := Length(buf)

	err := AppendU32(buf, AttrPriority, 2)
	assert.ErrorIs(t, err, ErrNoBufferSpace)
	assert.Equal(t, mlen, Length(buf))
}

func TestAppend_LengthAlwaysAligned(t *testing.T) {
	buf := newRequest(t, 256)

	for _, s := range []string{"a", "ab", "abc", "abcd", "abcde"} {
		require.NoError(t, AppendString(buf, AttrSoftware, s))
		assert.Zero(t, Length(buf)%4)
	}
}

func TestAppendAddr_IPv4(t *testing.T) {
	buf := newRequest(t, 128)
	a := addr.From(netip.MustParseAddr("192.0.2.1"), 0x1234)

	require.NoError(t, AppendAddr(buf, AttrMappedAddress, a))

	assert.Equal(t, 12, Length(buf))
	assert.Equal(t, []byte{0x00, 0x01, 0x00, 0x08}, buf[20:24])
	assert.Equal(t, []byte{0x00, 0x01, 0x12, 0x34, 192, 0, 2, 1}, buf[24:32])
}

func TestAppendAddr_IPv6(t *testing.T) {
	buf := newRequest(t, 128)
	ip := netip.MustParseAddr("2001:db8::1")
	a := addr.From(ip, 3478)

	require.NoError(t, AppendAddr(buf, AttrMappedAddress, a))

	assert.Equal(t, 24, Length(buf))
	assert.Equal(t, byte(0x02), buf[25])
	want := ip.As16()
	assert.Equal(t, want[:], buf[28:44])
}

func TestAppendAddr_UnsetFamily(t *testing.T) {
	buf := newRequest(t, 128)

	err := AppendAddr(buf, AttrMappedAddress, addr.Address{})
	assert.ErrorIs(t, err, ErrUnsupportedFamily)
	assert.Equal(t, 0, Length(buf))
}

func TestAppendXorAddr_IPv4(t *testing.T) {
	buf := newRequest(t, 128)
	a := addr.From(netip.MustParseAddr("1.2.3.4"), 0x1234)

	require.NoError(t, AppendXorAddr(buf, AttrXorMappedAddress, a))

	// port 0x1234 ^ 0x2112, address bytes ^ magic cookie
	assert.Equal(t, []byte{0x00, 0x01, 0x33, 0x26, 0x20, 0x10, 0xA7, 0x46}, buf[24:32])
}

func TestXorAddress_Involution(t *testing.T) {
	buf := newRequest(t, 128)

	for _, s := range []string{"192.0.2.1:4660", "[2001:db8::1]:3478"} {
		a := addr.FromAddrPort(netip.MustParseAddrPort(s))

		x, err := XorAddress(buf, a)
		require.NoError(t, err)
		assert.False(t, a.Equal(x))

		back, err := XorAddress(buf, x)
		require.NoError(t, err)
		assert.True(t, a.Equal(back))
	}
}

func TestAppendError_Unauthorized(t *testing.T) {
	buf := newRequest(t, 128)

	require.NoError(t, AppendError(buf, CodeUnauthorized))

	reason := "Authorization required"
	assert.Equal(t, []byte{0x00, 0x00, 0x04, 0x01}, buf[24:28])
	assert.Equal(t, []byte(reason), buf[28:28+len(reason)])
}

func TestAppendError_OutOfRange(t *testing.T) {
	buf := newRequest(t, 128)

	assert.ErrorIs(t, AppendError(buf, 299), ErrInvalidArgument)
	assert.ErrorIs(t, AppendError(buf, 700), ErrInvalidArgument)
	assert.Equal(t, 0, Length(buf))
}

func TestInitError_Answer(t *testing.T) {
	req := newRequest(t, 128)
	ans := make([]byte, 128)

	require.NoError(t, InitError(ans, req, CodeUnauthorized))

	assert.Equal(t, ClassError, MsgClass(ans))
	assert.Equal(t, MsgMethod(req), MsgMethod(ans))
	assert.Equal(t, TransactionID(req), TransactionID(ans))

	var got []AttrType
	require.NoError(t, ForeachAttr(ans, func(at AttrType, v []byte) error {
		got = append(got, at)
		return nil
	}))
	assert.Equal(t, []AttrType{AttrErrorCode}, got)
}

func TestInitErrorUnknown_ListsAttrs(t *testing.T) {
	req := newRequest(t, 128)
	require.NoError(t, AppendU32(req, AttrType(0x7F01), 1))
	require.NoError(t, AppendU32(req, AttrType(0x7F02), 2))

	// 0x8000 and up is comprehension-optional, must not be listed.
	require.NoError(t, AppendFlag(req, AttrType(0x9999)))

	assert.Equal(t, []AttrType{0x7F01, 0x7F02}, FindUnknown(req))

	require.NoError(t, InitErrorUnknown(req, req))

	var codes []byte
	var unknown []AttrType
	require.NoError(t, ForeachAttr(req, func(at AttrType, v []byte) error {
		switch at {
		case AttrErrorCode:
			codes = append(codes, v[2], v[3])
		case AttrUnknownAttributes:
			for i := 0; i+2 <= len(v); i += 2 {
				unknown = append(unknown, AttrType(readU16(v[i:])))
			}
		}
		return nil
	}))
	assert.Equal(t, []byte{4, 20}, codes)
	assert.Equal(t, []AttrType{0x7F01, 0x7F02}, unknown)
}

func TestForeachAttr_Malformed(t *testing.T) {
	buf := newRequest(t, 128)
	setLength(buf, 3)

	err := ForeachAttr(buf, func(AttrType, []byte) error { return nil })
	assert.ErrorIs(t, err, ErrMalformedAttrs)
}
