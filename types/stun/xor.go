package stun

import (
	"net/netip"

	"github.com/icemesh/wire/types/addr"
)

// XorAddress applies the RFC 5389 Section 15.2 address transform: the
// port is XORed with the top half of the magic cookie; IPv4 address
// bytes are XORed with the cookie, IPv6 address bytes with the cookie
// followed by msg's transaction ID. The transform is its own inverse.
func XorAddress(msg []byte, a addr.Address) (addr.Address, error) {
	id := TransactionID(msg)
	port := a.Port() ^ uint16(MagicCookie>>16)

	var cookie [4]byte
	putU32(cookie[:], MagicCookie)

	switch {
	case a.Is4():
		b := a.AddrPort().Addr().As4()
		for i := range b {
			b[i] ^= cookie[i]
		}
		return addr.From(netip.AddrFrom4(b), port), nil

	case a.Is6():
		b := a.IPv6()
		for i := range b {
			if i < len(cookie) {
				b[i] ^= cookie[i]
			} else {
				b[i] ^= id[i-len(cookie)]
			}
		}
		return addr.From(netip.AddrFrom16(b), port), nil

	default:
		return addr.Address{}, ErrUnsupportedFamily
	}
}
