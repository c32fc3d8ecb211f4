package scan

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cartscan/cartscan/internal/model"
)

// Frame is one raw sample from the capture source. For a line-oriented
// scanner device this is the bytes of one line; the decode algorithm
// behind Decoder is opaque to everything in this package.
type Frame []byte

// FrameStream supplies frames from a started capture source.
type FrameStream interface {
	// Next returns the next frame. It blocks until a frame is available,
	// the context is cancelled, or the source fails. A source failure
	// (including end of stream) is reported as an error; the session
	// treats it like cancellation.
	Next(ctx context.Context) (Frame, error)
}

// CaptureSource abstracts the scanner hardware. Implementations must
// tolerate Stop being called while a Next is blocked and must make Stop
// idempotent at the device level; the session additionally guarantees it
// calls Stop exactly once.
type CaptureSource interface {
	// Start acquires the device and begins supplying frames.
	// It returns ErrCaptureUnavailable or ErrPermissionDenied when the
	// device cannot be acquired.
	Start(ctx context.Context) (FrameStream, error)

	// Stop releases the device handle.
	Stop() error
}

// Decoder turns a frame into zero or one scan candidate.
type Decoder interface {
	// Decode attempts to decode the frame. The second return value is
	// false for a decode miss, which is routine input, not an error.
	Decode(frame Frame) (model.ScanCandidate, bool)
}

// LineCapture reads frames from a line-oriented scanner device such as a
// USB keyboard-wedge or serial barcode scanner exposed as a character
// device. Each line is one frame. An empty Path means standard input.
type LineCapture struct {
	// Path is the device path, e.g. /dev/ttyACM0. Empty means stdin.
	Path string

	// reader overrides the device for tests.
	reader io.Reader

	// file is the opened device, held so Stop can release it.
	file *os.File

	// frames carries lines from the reader goroutine to Next.
	frames chan Frame

	// readErr carries the terminal reader error, closed after frames.
	readErr chan error
}

// NewLineCapture creates a capture source reading from the device at
// path, or standard input when path is empty.
func NewLineCapture(path string) *LineCapture {
	return &LineCapture{Path: path}
}

// NewReaderCapture creates a capture source reading from r.
// Used by tests and by piped input.
func NewReaderCapture(r io.Reader) *LineCapture {
	return &LineCapture{reader: r}
}

// Start implements CaptureSource. It opens the device and starts a reader
// goroutine so that Next can honor context cancellation even while the
// underlying read blocks.
func (c *LineCapture) Start(ctx context.Context) (FrameStream, error) {
	r := c.reader
	if r == nil {
		if c.Path == "" {
			r = os.Stdin
		} else {
			f, err := os.Open(c.Path)
			if err != nil {
				if os.IsNotExist(err) {
					return nil, fmt.Errorf("%w: %s", ErrCaptureUnavailable, c.Path)
				}
				if os.IsPermission(err) {
					return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, c.Path)
				}
				return nil, fmt.Errorf("failed to open scanner device %s: %w", c.Path, err)
			}
			c.file = f
			r = f
		}
	}

	c.frames = make(chan Frame)
	c.readErr = make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			line := append(Frame(nil), scanner.Bytes()...)
			select {
			case c.frames <- line:
			case <-ctx.Done():
				close(c.frames)
				return
			}
		}
		if err := scanner.Err(); err != nil {
			c.readErr <- err
		} else {
			c.readErr <- io.EOF
		}
		close(c.frames)
	}()

	return c, nil
}

// Next implements FrameStream.
func (c *LineCapture) Next(ctx context.Context) (Frame, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case frame, ok := <-c.frames:
		if !ok {
			select {
			case err := <-c.readErr:
				return nil, fmt.Errorf("capture source closed: %w", err)
			default:
				return nil, fmt.Errorf("capture source closed: %w", io.EOF)
			}
		}
		return frame, nil
	}
}

// Stop implements CaptureSource, releasing the device handle.
func (c *LineCapture) Stop() error {
	if c.file != nil {
		err := c.file.Close()
		c.file = nil
		return err
	}
	return nil
}

// LineDecoder decodes line frames: the decode capability of a
// keyboard-wedge scanner already happened in hardware, so the "decode" is
// normalization plus a plausibility check. Blank lines are decode misses.
type LineDecoder struct {
	// Format is the symbology label attached to candidates.
	// Defaults to "line" when empty.
	Format string

	// now allows tests to pin candidate timestamps.
	now func() time.Time
}

// Decode implements Decoder.
func (d *LineDecoder) Decode(frame Frame) (model.ScanCandidate, bool) {
	code := model.NormalizeCode(trimNul(string(frame)))
	if code == "" {
		return model.ScanCandidate{}, false
	}

	format := d.Format
	if format == "" {
		format = "line"
	}
	nowFn := d.now
	if nowFn == nil {
		nowFn = time.Now
	}

	return model.ScanCandidate{
		Code:      code,
		Format:    format,
		Timestamp: nowFn(),
	}, true
}

// trimNul strips NUL padding some serial scanners append.
func trimNul(s string) string {
	return strings.Trim(s, "\x00")
}
