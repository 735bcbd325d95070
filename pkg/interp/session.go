// Package interp binds the command interpreter to a byte stream.
package interp

import (
	"context"
	"fmt"
	"io"

	"github.com/golang/glog"

	"github.com/robotalks/pinio.go/pkg/device"
	"github.com/robotalks/pinio.go/pkg/wire"
)

// Banner is written once when a session starts, so a host can wait for
// the interpreter to be ready.
const Banner = "READY"

// Session drives the command interpreter over one byte stream: bytes
// are framed into lines, decoded and dispatched strictly one command
// at a time. Read results and error markers are written back as lines.
type Session struct {
	ReadWriter io.ReadWriter
	Controller *device.Controller

	// NoBanner suppresses the startup banner line.
	NoBanner bool

	framer wire.Framer
}

// New creates a Session.
func New(rw io.ReadWriter, ctl *device.Controller) *Session {
	return &Session{ReadWriter: rw, Controller: ctl}
}

// Name implements Named.
func (s *Session) Name() string {
	return "interp"
}

// Run implements Runnable. It processes the stream until EOF, the
// context is canceled, or the transport fails. Command errors are
// reported to the peer and never stop the loop.
func (s *Session) Run(ctx context.Context) error {
	if !s.NoBanner {
		if _, err := fmt.Fprintf(s.ReadWriter, "%s\n", Banner); err != nil {
			return err
		}
	}
	byteCh, errCh := make(chan byte), make(chan error, 1)
	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.readLoop(subCtx, byteCh, errCh)
	for {
		select {
		case b := <-byteCh:
			if err := s.feed(b); err != nil {
				return err
			}
		case err := <-errCh:
			if err == io.EOF {
				return nil
			}
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *Session) readLoop(ctx context.Context, byteCh chan byte, errCh chan error) {
	buf := make([]byte, 1)
	for {
		select {
		case <-ctx.Done():
			return
		default:
			n, err := s.ReadWriter.Read(buf)
			if err != nil {
				errCh <- err
				return
			}
			if n == 0 {
				continue
			}
			select {
			case byteCh <- buf[0]:
			case <-ctx.Done():
				return
			}
		}
	}
}

// feed processes one byte; any returned error is a transport failure.
func (s *Session) feed(b byte) error {
	line, ok := s.framer.Feed(b)
	if !ok {
		return nil
	}
	cmd, err := wire.Decode(line)
	if err != nil {
		glog.V(1).Infof("decode %q: %v", line, err)
		return s.writeErr(err)
	}
	result, hasResult, err := s.Controller.Dispatch(cmd)
	if err != nil {
		glog.V(1).Infof("dispatch %s: %v", cmd, err)
		return s.writeErr(err)
	}
	if hasResult {
		_, err = fmt.Fprintf(s.ReadWriter, "%d\n", result)
	}
	return err
}

func (s *Session) writeErr(cmdErr error) error {
	_, err := fmt.Fprintf(s.ReadWriter, "ERR %v\n", cmdErr)
	return err
}
