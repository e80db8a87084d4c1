package nodeid

import (
	"errors"
	"net"
	"testing"

	"github.com/spaolacci/murmur3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticIP(s string) func() (net.IP, error) {
	return func() (net.IP, error) { return net.ParseIP(s), nil }
}

func TestIPProvider_NodeID(t *testing.T) {
	tests := []struct {
		name      string
		ip        string
		maxNodeID int64
		want      int64
	}{
		{name: "TenBits", ip: "192.168.1.42", maxNodeID: 1023, want: (1<<8 | 42) & 1023},
		{name: "SixteenBits", ip: "10.0.200.7", maxNodeID: 65535, want: 200<<8 | 7},
		{name: "OneBit", ip: "10.0.0.3", maxNodeID: 1, want: 1},
		{name: "Masked", ip: "172.16.255.255", maxNodeID: 255, want: 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IPProvider{Lookup: staticIP(tt.ip)}.NodeID(tt.maxNodeID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIPProvider_RejectsIPv6(t *testing.T) {
	_, err := IPProvider{Lookup: staticIP("2001:db8::1")}.NodeID(1023)
	assert.ErrorIs(t, err, ErrNoAddress)
}

func TestHostnameProvider_NodeID(t *testing.T) {
	p := HostnameProvider{Hostname: func() (string, error) { return "timeshard-7f9c", nil }}

	got, err := p.NodeID(1023)
	require.NoError(t, err)
	assert.Equal(t, int64(murmur3.Sum32([]byte("timeshard-7f9c")))&1023, got)
	assert.LessOrEqual(t, got, int64(1023))

	_, err = HostnameProvider{Hostname: func() (string, error) { return "", nil }}.NodeID(1023)
	assert.Error(t, err)
}

func TestStatic_NodeID(t *testing.T) {
	got, err := Static(12).NodeID(1023)
	require.NoError(t, err)
	assert.Equal(t, int64(12), got)

	_, err = Static(1024).NodeID(1023)
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	failing := ProviderFunc(func(int64) (int64, error) { return 0, errors.New("no network") })

	assert.Equal(t, int64(298), Resolve(1023, failing, IPProvider{Lookup: staticIP("192.168.1.42")}))
	assert.Equal(t, int64(0), Resolve(1023, failing, failing), "falls back to 0")
	assert.Equal(t, int64(0), Resolve(1023))
}
