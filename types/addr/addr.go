// Package addr holds the network endpoint value type used across the
// wire-construction code: an IPv4 or IPv6 address plus a port.
package addr

import (
	"net"
	"net/netip"

	"go4.org/netipx"
)

// Address is a tagged network endpoint: an IPv4 or IPv6 address together
// with a port in host byte order. It is a plain value type; the zero
// Address has no family set and must be assigned before use.
type Address struct {
	ip   netip.Addr
	port uint16
}

// From builds an Address from an address and port.
func From(ip netip.Addr, port uint16) Address {
	return Address{ip: ip, port: port}
}

// FromAddrPort builds an Address from a netip.AddrPort.
func FromAddrPort(ap netip.AddrPort) Address {
	return Address{ip: ap.Addr().Unmap(), port: ap.Port()}
}

// FromUDPAddr builds an Address from the OS-level UDP address form.
// It panics if ua does not carry an IPv4 or IPv6 address.
func FromUDPAddr(ua *net.UDPAddr) Address {
	ip, ok := netip.AddrFromSlice(ua.IP)
	if !ok {
		panic("addr: sockaddr is neither IPv4 nor IPv6")
	}
	return Address{ip: ip.Unmap(), port: uint16(ua.Port)}
}

// ToUDPAddr converts back to the OS-level UDP address form.
func (a Address) ToUDPAddr() *net.UDPAddr {
	return net.UDPAddrFromAddrPort(a.AddrPort())
}

// AddrPort returns the endpoint as a netip.AddrPort.
func (a Address) AddrPort() netip.AddrPort {
	return netip.AddrPortFrom(a.ip, a.port)
}

// SetIPv4 sets the IPv4 address from a host-order 32-bit value,
// leaving the port untouched.
func (a *Address) SetIPv4(v uint32) {
	a.ip = netip.AddrFrom4([4]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}

// SetIPv4FromString parses a dotted-quad IPv4 address. It reports whether
// s was valid; on failure the Address is left untouched.
func (a *Address) SetIPv4FromString(s string) bool {
	ip, err := netip.ParseAddr(s)
	if err != nil || !ip.Is4() {
		return false
	}
	a.ip = ip
	return true
}

// SetIPv6 sets the IPv6 address from its 16 network-order bytes,
// leaving the port untouched.
func (a *Address) SetIPv6(b [16]byte) {
	a.ip = netip.AddrFrom16(b)
}

// SetPort sets the port (host byte order).
func (a *Address) SetPort(port uint16) { a.port = port }

// Port returns the port (host byte order).
func (a Address) Port() uint16 { return a.port }

// Is4 reports whether the IPv4 variant is set.
func (a Address) Is4() bool { return a.ip.Is4() }

// Is6 reports whether the IPv6 variant is set.
func (a Address) Is6() bool { return a.ip.Is6() && !a.ip.Is4In6() }

// IsValid reports whether either variant is set.
func (a Address) IsValid() bool { return a.ip.IsValid() }

// IPv4 returns the address as a host-order 32-bit value.
// It panics unless the IPv4 variant is set.
func (a Address) IPv4() uint32 {
	if !a.ip.Is4() {
		panic("addr: IPv4 read on non-IPv4 address")
	}
	b := a.ip.As4()
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// IPv6 returns the 16 network-order address bytes.
// It panics unless the IPv6 variant is set.
func (a Address) IPv6() [16]byte {
	if !a.Is6() {
		panic("addr: IPv6 read on non-IPv6 address")
	}
	return a.ip.As16()
}

// String returns the canonical textual form of the address, without the
// port ("192.0.2.1", "2001:db8::1").
func (a Address) String() string { return a.ip.String() }

// Equal reports whether two Addresses carry the same family, address
// bytes and port.
func (a Address) Equal(b Address) bool { return a == b }

// rfc3330Private covers the IPv4 ranges not routable on the Internet,
// per RFC 3330 (loopback included).
var rfc3330Private = func() *netipx.IPSet {
	var b netipx.IPSetBuilder
	for _, s := range []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"127.0.0.0/8",
	} {
		b.AddPrefix(netip.MustParsePrefix(s))
	}
	set, err := b.IPSet()
	if err != nil {
		panic(err)
	}
	return set
}()

// IsPrivate reports whether the address falls in one of the RFC 3330
// non-routable IPv4 ranges. It is only defined for IPv4 and panics for
// any other family.
func (a Address) IsPrivate() bool {
	if !a.ip.Is4() {
		panic("addr: IsPrivate is only defined for IPv4")
	}
	return rfc3330Private.Contains(a.ip)
}
