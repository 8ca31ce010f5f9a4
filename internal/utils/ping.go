package utils

import (
	"fmt"
	"net"
	"time"
)

// PingTimeout bounds every reachability probe.
const PingTimeout = 1500 * time.Millisecond

// PingAddress opens and closes a TCP connection to host:port.
func PingAddress(address string, timeout time.Duration) error {
	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	defer conn.Close()

	return nil
}

// PingDatabaseHost checks that a networked database server accepts connections.
func PingDatabaseHost(host, port string) error {
	return PingAddress(net.JoinHostPort(host, port), PingTimeout)
}
