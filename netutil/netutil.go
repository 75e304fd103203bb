package netutil

import (
	"fmt"
	"net"
)

// CidrOverlap reports whether the address spaces of a and b intersect.
func CidrOverlap(a, b *net.IPNet) bool {
	return a.Contains(b.IP) || b.Contains(a.IP)
}

//Return next IP address in network range
func IncrementIP(netIP net.IP) net.IP {
	ip := make(net.IP, len(netIP))
	copy(ip, netIP)

	for j := len(ip) - 1; j >= 0; j-- {
		ip[j]++
		if ip[j] > 0 {
			break
		}
	}

	return ip
}

// FirstSubnet returns the lowest /mask block inside network.
// Subnets are carved from the start of the range, so a VPC with a single subnet always gets the first block.
func FirstSubnet(network *net.IPNet, mask int) (*net.IPNet, error) {
	ones, bits := network.Mask.Size()
	if mask < ones || mask > bits {
		return nil, fmt.Errorf("subnet mask /%d does not fit in %s: it must be between /%d and /%d", mask, network.String(), ones, bits)
	}

	return &net.IPNet{
		IP:   network.IP.Mask(network.Mask),
		Mask: net.CIDRMask(mask, bits),
	}, nil
}

// ParseIPv4CIDR parses s and rejects anything but an IPv4 network.
func ParseIPv4CIDR(s string) (*net.IPNet, error) {
	_, network, err := net.ParseCIDR(s)
	if err != nil {
		return nil, err
	}
	if network.IP.To4() == nil {
		return nil, fmt.Errorf("%s is not an IPv4 range", s)
	}
	network.IP = network.IP.To4()
	return network, nil
}
