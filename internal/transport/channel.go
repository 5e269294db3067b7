// Package transport implements the UDP channel a session uses to exchange
// frames with a device: one socket, one mutex, synchronous request/response.
package transport

import (
	"context"
	"fmt"
	"net"
	"sync"
	"syscall"
	"time"

	"broadlink/internal/protocol"
)

const (
	// perAttemptTimeout bounds a single read; SendRecv keeps retrying the
	// send until the caller's overall deadline elapses.
	perAttemptTimeout = time.Second
	readBufferSize    = 2048
)

// Channel owns a single UDP socket. A handle is not safe for concurrent
// SendRecv calls from multiple goroutines expecting independent
// request/response pairs — the mutex serializes them instead of failing.
type Channel struct {
	mu   sync.Mutex
	conn *net.UDPConn
}

// Listen opens a UDP socket bound to localAddr (use "" or ":0" for an
// ephemeral port) with SO_REUSEADDR and SO_BROADCAST set, so the same
// channel can both send discovery broadcasts and receive unicast replies.
func Listen(ctx context.Context, localAddr string) (*Channel, error) {
	lc := net.ListenConfig{
		Control: func(network, address string, c syscall.RawConn) error {
			var controlErr error
			err := c.Control(func(fd uintptr) {
				controlErr = setSocketOptions(fd)
			})
			if err != nil {
				return err
			}
			return controlErr
		},
	}

	pc, err := lc.ListenPacket(ctx, "udp4", localAddr)
	if err != nil {
		return nil, fmt.Errorf("transport: listen %s: %w", localAddr, err)
	}
	conn, ok := pc.(*net.UDPConn)
	if !ok {
		pc.Close()
		return nil, fmt.Errorf("transport: unexpected packet conn type %T", pc)
	}
	return &Channel{conn: conn}, nil
}

// LocalAddr returns the socket's bound local address.
func (c *Channel) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

// SendRecv sends packet to remote and waits for a single reply, retrying
// the send every perAttemptTimeout until overallDeadline has elapsed.
// Devices drop UDP datagrams under load, so the retry-the-send strategy
// (rather than only retrying the read) is what makes control calls
// reliable on a noisy network. Discovery goes through Broadcast instead.
func (c *Channel) SendRecv(packet []byte, remote net.Addr, overallDeadline time.Duration) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	deadline := time.Now().Add(overallDeadline)
	buf := make([]byte, readBufferSize)

	for {
		if _, err := c.conn.WriteTo(packet, remote); err != nil {
			return nil, protocol.NewError(protocol.SendError, "write datagram", err)
		}

		attemptDeadline := time.Now().Add(perAttemptTimeout)
		if attemptDeadline.After(deadline) {
			attemptDeadline = deadline
		}
		if err := c.conn.SetReadDeadline(attemptDeadline); err != nil {
			return nil, fmt.Errorf("transport: set read deadline: %w", err)
		}

		n, _, err := c.conn.ReadFrom(buf)
		if err == nil {
			reply := make([]byte, n)
			copy(reply, buf[:n])
			return reply, nil
		}

		netErr, isTimeout := err.(net.Error)
		if !isTimeout || !netErr.Timeout() {
			return nil, protocol.NewError(protocol.ReadError, "read datagram", err)
		}
		if time.Now().After(deadline) {
			return nil, protocol.NewError(protocol.NetworkTimeout, "no response within deadline", nil)
		}
	}
}

// Broadcast sends packet once to the limited broadcast address on port and
// invokes onReply for every datagram received until deadline elapses.
// Unlike SendRecv, the probe is sent only once — discovery expects many
// devices to answer a single broadcast, not one device to answer a retried
// unicast. Malformed or late datagrams simply stop being read once the
// deadline passes; onReply is responsible for filtering garbage.
func (c *Channel) Broadcast(packet []byte, port int, deadline time.Duration, onReply func(data []byte, from net.Addr)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	remote := &net.UDPAddr{IP: net.IPv4bcast, Port: port}
	if _, err := c.conn.WriteTo(packet, remote); err != nil {
		return protocol.NewError(protocol.SendError, "broadcast datagram", err)
	}

	end := time.Now().Add(deadline)
	buf := make([]byte, readBufferSize)
	for {
		remaining := time.Until(end)
		if remaining <= 0 {
			return nil
		}
		if err := c.conn.SetReadDeadline(time.Now().Add(minDuration(remaining, perAttemptTimeout))); err != nil {
			return fmt.Errorf("transport: set read deadline: %w", err)
		}
		n, from, err := c.conn.ReadFrom(buf)
		if err != nil {
			netErr, isTimeout := err.(net.Error)
			if isTimeout && netErr.Timeout() {
				continue
			}
			return protocol.NewError(protocol.ReadError, "read datagram", err)
		}
		reply := make([]byte, n)
		copy(reply, buf[:n])
		onReply(reply, from)
	}
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}

// Close releases the underlying socket. Safe to call more than once.
func (c *Channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close()
}
