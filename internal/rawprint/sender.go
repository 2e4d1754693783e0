// Package rawprint delivers prepared print files straight to a printer's
// raw TCP port (JetDirect/AppSocket), one connection per copy.
package rawprint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/netip"
	"os"
	"syscall"
	"time"

	"lprun/internal/domain"
	appErrors "lprun/internal/errors"
	"lprun/internal/logging"
)

// Code is the result of a raw job. Every failure class has its own
// negative value.
type Code int

const (
	CodeOK             Code = 0
	CodeInvalidArgs    Code = -1
	CodeSocket         Code = -2
	CodeInvalidAddress Code = -3
	CodeConnect        Code = -4
	CodeFileOpen       Code = -5
	CodeSend           Code = -6
)

const (
	ChunkSize        = 8 * 1024
	DefaultCopyDelay = 200 * time.Millisecond
)

var errZeroWrite = errors.New("connection accepted zero bytes")

// Reporter observes a transfer. Progress is called after every write that
// moved at least one byte.
type Reporter interface {
	CopyStarted(current, copies int, total uint64)
	Progress(p domain.TransferProgress)
	CopyFinished(current, copies int)
}

type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Sender runs raw jobs. Connect and send have no timeout: a printer that
// stops reading blocks the sender until the peer gives up.
type Sender struct {
	Dialer    Dialer
	Reporter  Reporter
	Logger    logging.Logger
	CopyDelay time.Duration
	Sleep     func(time.Duration)
}

// Send delivers job.Copies copies sequentially, each over a fresh
// connection. The first failure aborts the whole job.
func (s *Sender) Send(ctx context.Context, job domain.TransferJob) (Code, error) {
	if job.Host == "" || job.FilePath == "" || job.Port == 0 || job.Copies < 1 {
		return s.fail(CodeInvalidArgs, appErrors.PhaseArgs, job.Host, 0, 0,
			fmt.Errorf("invalid job: host=%q port=%d file=%q copies=%d", job.Host, job.Port, job.FilePath, job.Copies))
	}

	ip, err := netip.ParseAddr(job.Host)
	if err != nil || !ip.Is4() {
		if err == nil {
			err = errors.New("not an IPv4 address")
		}
		return s.fail(CodeInvalidAddress, appErrors.PhaseAddress, job.Host, 0, 0, err)
	}
	addr := netip.AddrPortFrom(ip, job.Port).String()

	for c := 1; c <= job.Copies; c++ {
		s.Logger.Verbosef("Sending copy %d/%d to %s", c, job.Copies, addr)
		if code, phase, err := s.sendCopy(ctx, addr, job.FilePath, c, job.Copies); err != nil {
			return s.fail(code, phase, addr, c, c-1, err)
		}
		if c < job.Copies {
			s.pause()
		}
	}
	return CodeOK, nil
}

func (s *Sender) sendCopy(ctx context.Context, addr, path string, current, copies int) (Code, appErrors.Phase, error) {
	conn, err := s.dialer().DialContext(ctx, "tcp4", addr)
	if err != nil {
		if isSocketError(err) {
			return CodeSocket, appErrors.PhaseSocket, err
		}
		return CodeConnect, appErrors.PhaseConnect, err
	}
	defer conn.Close()

	file, err := os.Open(path)
	if err != nil {
		return CodeFileOpen, appErrors.PhaseFileOpen, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return CodeFileOpen, appErrors.PhaseFileOpen, err
	}

	progress := domain.TransferProgress{
		Copy:       current,
		Copies:     copies,
		TotalBytes: uint64(info.Size()),
	}
	s.reporter().CopyStarted(current, copies, progress.TotalBytes)

	buf := make([]byte, ChunkSize)
	for {
		n, readErr := file.Read(buf)
		if n > 0 {
			if err := s.writeAll(conn, buf[:n], &progress); err != nil {
				return CodeSend, appErrors.PhaseSend, err
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return CodeFileOpen, appErrors.PhaseFileOpen, readErr
		}
	}

	s.reporter().CopyFinished(current, copies)
	return CodeOK, "", nil
}

// writeAll keeps writing until chunk is fully handed to the connection.
// A short write is progress, not completion.
func (s *Sender) writeAll(conn net.Conn, chunk []byte, progress *domain.TransferProgress) error {
	for off := 0; off < len(chunk); {
		n, err := conn.Write(chunk[off:])
		if n > 0 {
			off += n
			progress.BytesSent += uint64(n)
			s.reporter().Progress(*progress)
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return errZeroWrite
		}
	}
	return nil
}

func (s *Sender) fail(code Code, phase appErrors.Phase, addr string, current, completed int, err error) (Code, error) {
	s.Logger.Verbosef("raw job aborted: %s (code %d)", phase, code)
	return code, &appErrors.TransportError{
		Phase:     phase,
		Code:      int(code),
		Addr:      addr,
		Copy:      current,
		Completed: completed,
		Err:       err,
	}
}

func (s *Sender) pause() {
	delay := s.CopyDelay
	if delay <= 0 {
		delay = DefaultCopyDelay
	}
	if s.Sleep != nil {
		s.Sleep(delay)
		return
	}
	time.Sleep(delay)
}

func (s *Sender) dialer() Dialer {
	if s.Dialer == nil {
		return &net.Dialer{}
	}
	return s.Dialer
}

func (s *Sender) reporter() Reporter {
	if s.Reporter == nil {
		return discard{}
	}
	return s.Reporter
}

// isSocketError separates failures to obtain a socket from failures to
// reach the peer.
func isSocketError(err error) bool {
	for _, errno := range []syscall.Errno{syscall.EMFILE, syscall.ENFILE, syscall.ENOBUFS, syscall.EAFNOSUPPORT, syscall.EPROTONOSUPPORT} {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}

type discard struct{}

func (discard) CopyStarted(int, int, uint64)     {}
func (discard) Progress(domain.TransferProgress) {}
func (discard) CopyFinished(int, int)            {}
