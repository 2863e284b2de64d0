package netif

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIPv4Of(t *testing.T) {
	addrs := []net.Addr{
		&net.IPNet{IP: net.ParseIP("192.168.1.20"), Mask: net.CIDRMask(24, 32)},
		&net.IPNet{IP: net.ParseIP("fe80::1"), Mask: net.CIDRMask(64, 128)},
		&net.IPAddr{IP: net.ParseIP("10.0.0.5")},
		&net.IPNet{IP: net.ParseIP("127.0.0.1"), Mask: net.CIDRMask(8, 32)},
	}

	got := ipv4Of(addrs)
	assert.Len(t, got, 2)
	assert.Equal(t, "192.168.1.20", got[0].String())
	assert.Equal(t, "10.0.0.5", got[1].String())
}

func TestPublicIPv4(t *testing.T) {
	ips, err := PublicIPv4()
	assert.NoError(t, err)
	for _, ip := range ips {
		assert.NotNil(t, ip.To4())
		assert.False(t, ip.IsLoopback())
	}
}
