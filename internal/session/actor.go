package session

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"

	"github.com/simon-fu/cin-rms/internal/log"
	"github.com/simon-fu/cin-rms/internal/vnwire"
)

// ErrActorClosed is returned by requests issued after Close.
var ErrActorClosed = errors.New("session: actor closed")

// Actor owns one unixgram socket and serializes all work on a single
// goroutine: it alternates between the next inbound datagram and the next
// queued request, never handling two datagrams concurrently and never
// reordering a reply relative to the request that produced it. Callers talk
// to the socket owner only through request operations.
type Actor struct {
	conn    *net.UnixConn
	path    string
	logger  log.Logger
	recvBuf []byte

	reqCh  chan request
	inCh   chan inbound
	inDone chan struct{}
	done   chan struct{}
	wg     sync.WaitGroup

	closeOnce sync.Once
}

type reqKind int

const (
	reqRegister reqKind = iota
)

type request struct {
	kind  reqKind
	reply chan error
}

type inbound struct {
	n    int
	from *net.UnixAddr
	err  error
}

// BindActor binds path and starts the actor goroutines.
func BindActor(path string) (*Actor, error) {
	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("failed to remove stale socket %s: %w", path, err)
	}
	conn, err := net.ListenUnixgram("unixgram", &net.UnixAddr{Name: path, Net: "unixgram"})
	if err != nil {
		return nil, fmt.Errorf("failed to bind socket %s: %w", path, err)
	}

	a := &Actor{
		conn:    conn,
		path:    path,
		logger:  log.GetLogger().WithField("socket", path),
		recvBuf: make([]byte, DefaultBufferSize),
		reqCh:   make(chan request),
		inCh:    make(chan inbound),
		inDone:  make(chan struct{}),
		done:    make(chan struct{}),
	}

	a.wg.Add(2)
	go a.readLoop()
	go a.run()
	return a, nil
}

// Register submits a registration probe and awaits its completion.
func (a *Actor) Register(ctx context.Context) error {
	return a.call(ctx, reqRegister)
}

// call enqueues one request and blocks until the actor replies.
func (a *Actor) call(ctx context.Context, kind reqKind) error {
	reply := make(chan error, 1)
	select {
	case a.reqCh <- request{kind: kind, reply: reply}:
	case <-a.done:
		return ErrActorClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close shuts the actor down, waits for its goroutines and removes the
// socket file. Safe to call more than once.
func (a *Actor) Close() error {
	a.shutdown()
	a.wg.Wait()
	os.RemoveAll(a.path)
	return nil
}

// shutdown marks the actor closed and unblocks the socket read. It must not
// wait for the goroutines; run calls it from inside one.
func (a *Actor) shutdown() {
	a.closeOnce.Do(func() {
		close(a.done)
		a.conn.Close()
	})
}

// readLoop blocks on the socket and hands each datagram to the run loop,
// waiting for it to finish before reusing the receive buffer.
func (a *Actor) readLoop() {
	defer a.wg.Done()
	for {
		n, from, err := a.conn.ReadFromUnix(a.recvBuf)
		select {
		case a.inCh <- inbound{n: n, from: from, err: err}:
		case <-a.done:
			return
		}
		if err != nil {
			return
		}
		select {
		case <-a.inDone:
		case <-a.done:
			return
		}
	}
}

// run is the single consumer of both inbound datagrams and requests.
func (a *Actor) run() {
	defer a.wg.Done()
	for {
		select {
		case in := <-a.inCh:
			if in.err != nil {
				select {
				case <-a.done:
				default:
					a.logger.WithError(in.err).Error("recvfrom failed")
				}
				// Requests issued after a transport failure must fail
				// fast instead of queueing against a dead loop.
				a.shutdown()
				return
			}
			a.handleDatagram(a.recvBuf[:in.n], in.from)
			select {
			case a.inDone <- struct{}{}:
			case <-a.done:
				return
			}
		case req := <-a.reqCh:
			req.reply <- a.handleRequest(req)
		case <-a.done:
			return
		}
	}
}

func (a *Actor) handleRequest(req request) error {
	switch req.kind {
	case reqRegister:
		// Probe only; nothing to exchange yet.
		return nil
	}
	return fmt.Errorf("session: unknown request kind %d", req.kind)
}

func (a *Actor) handleDatagram(data []byte, from *net.UnixAddr) {
	pkt, err := vnwire.ParsePacket(data)
	if err != nil {
		a.logger.WithError(err).WithField("from", from.Name).Warn("dropping malformed datagram")
		return
	}
	a.logger.WithField("from", from.Name).Debug(pkt.String())
}
