// Package nodeid resolves the node identifier of a generator when none is configured.
// Providers are best effort: two hosts can map to the same node ID, so deployments that
// need strict uniqueness should configure the ID explicitly.
package nodeid

import (
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/anthanhphan/gosdk/logger"
	"github.com/spaolacci/murmur3"
)

var ErrNoAddress = errors.New("no usable IPv4 address")

// Provider derives a node ID in [0, maxNodeID].
type Provider interface {
	NodeID(maxNodeID int64) (int64, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(maxNodeID int64) (int64, error)

func (f ProviderFunc) NodeID(maxNodeID int64) (int64, error) {
	return f(maxNodeID)
}

// Static always returns the same ID.
type Static int64

func (s Static) NodeID(maxNodeID int64) (int64, error) {
	if int64(s) < 0 || int64(s) > maxNodeID {
		return 0, fmt.Errorf("static node ID %d outside [0, %d]", int64(s), maxNodeID)
	}
	return int64(s), nil
}

// IPProvider derives the ID from the last two octets of the host's IPv4 address, which is
// unique per pod in most container networks: 192.168.1.42 -> (1<<8 | 42) & maxNodeID.
type IPProvider struct {
	// Lookup returns the host address. Defaults to HostIPv4.
	Lookup func() (net.IP, error)
}

func (p IPProvider) NodeID(maxNodeID int64) (int64, error) {
	lookup := p.Lookup
	if lookup == nil {
		lookup = HostIPv4
	}

	ip, err := lookup()
	if err != nil {
		return 0, err
	}
	ip4 := ip.To4()
	if ip4 == nil {
		return 0, fmt.Errorf("%w: %s is not IPv4", ErrNoAddress, ip)
	}

	bits := int64(ip4[2])<<8 | int64(ip4[3])
	return bits & maxNodeID, nil
}

// HostIPv4 resolves the hostname, falling back to the first non-loopback interface address.
func HostIPv4() (net.IP, error) {
	if host, err := os.Hostname(); err == nil {
		if ips, err := net.LookupIP(host); err == nil {
			for _, ip := range ips {
				if ip4 := ip.To4(); ip4 != nil && !ip4.IsLoopback() {
					return ip4, nil
				}
			}
		}
	}

	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil, fmt.Errorf("failed to list interface addresses: %w", err)
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		if ip4 := ipNet.IP.To4(); ip4 != nil && !ip4.IsLoopback() {
			return ip4, nil
		}
	}
	return nil, ErrNoAddress
}

// HostnameProvider hashes the hostname (or POD_NAME-style identity) with murmur3.
type HostnameProvider struct {
	// Hostname returns the identity to hash. Defaults to os.Hostname.
	Hostname func() (string, error)
}

func (p HostnameProvider) NodeID(maxNodeID int64) (int64, error) {
	hostname := p.Hostname
	if hostname == nil {
		hostname = os.Hostname
	}

	name, err := hostname()
	if err != nil {
		return 0, fmt.Errorf("failed to read hostname: %w", err)
	}
	if name == "" {
		return 0, errors.New("empty hostname")
	}

	return int64(murmur3.Sum32([]byte(name))) & maxNodeID, nil
}

// Resolve returns the first ID any provider yields. When all fail it logs a warning and
// returns 0.
func Resolve(maxNodeID int64, providers ...Provider) int64 {
	for _, p := range providers {
		id, err := p.NodeID(maxNodeID)
		if err != nil {
			logger.Debugw("Node ID provider failed", "provider", fmt.Sprintf("%T", p), "error", err.Error())
			continue
		}
		return id
	}

	logger.Warnw("Failed to derive node ID, using node_id=0; set TIMESHARD_NODE_ID to avoid collisions")
	return 0
}

// Default is the provider chain used when no node ID is configured.
func Default() []Provider {
	return []Provider{IPProvider{}, HostnameProvider{}}
}
