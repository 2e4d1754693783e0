package netif

import (
	"errors"
	"net"
	"net/netip"
)

// ErrNoSubnet is returned when the host has no non-loopback IPv4 address.
var ErrNoSubnet = errors.New("no non-loopback IPv4 interface found")

// LocalSubnet returns the /24 containing the first non-loopback IPv4
// address, in the order the OS enumerates interfaces.
func LocalSubnet() (string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", err
	}

	var addrs []net.Addr
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		ifaceAddrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		addrs = append(addrs, ifaceAddrs...)
	}
	return SubnetFromAddrs(addrs)
}

// SubnetFromAddrs picks the first IPv4, non-loopback address and returns
// its containing a.b.c.0/24.
func SubnetFromAddrs(addrs []net.Addr) (string, error) {
	for _, addr := range addrs {
		var ip net.IP
		switch v := addr.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		default:
			continue
		}

		ip4 := ip.To4()
		if ip4 == nil || ip4.IsLoopback() {
			continue
		}
		a := netip.AddrFrom4([4]byte(ip4))
		return netip.PrefixFrom(a, 24).Masked().String(), nil
	}
	return "", ErrNoSubnet
}
