package net

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zlib"
)

// NoCompression disables threshold compression on a transport.
const NoCompression = -1

// maxFrameBytes bounds a single frame; anything larger is a protocol error.
const maxFrameBytes = 1 << 21 // 2MB

// interReadBudget is the allowance between consecutive byte reads of one
// frame. A peer that stalls mid-frame past this budget fails the read.
const interReadBudget = 500 * time.Millisecond

// readDeadliner is the subset of net.Conn the transport uses to enforce the
// inter-read budget. Plain io.ReadWriters (pipes, buffers in tests) simply
// go without deadlines.
type readDeadliner interface {
	SetReadDeadline(t time.Time) error
}

// Transport frames logical packets over a byte stream: varint length
// prefixes, and past login-time negotiation, per-frame zlib compression for
// payloads at or above the threshold.
type Transport struct {
	rw        io.ReadWriter
	deadline  readDeadliner
	threshold int
}

func NewTransport(rw io.ReadWriter) *Transport {
	t := &Transport{rw: rw, threshold: NoCompression}
	if d, ok := rw.(readDeadliner); ok {
		t.deadline = d
	}
	return t
}

// SetThreshold installs the compression threshold for all subsequent frames
// in both directions. A negative threshold disables compression.
func (t *Transport) SetThreshold(threshold int) {
	t.threshold = threshold
}

// Threshold returns the active compression threshold, or NoCompression.
func (t *Transport) Threshold() int {
	return t.threshold
}

// SetStream replaces the underlying byte stream, keeping the negotiated
// threshold. Used when login-time encryption wraps the socket.
func (t *Transport) SetStream(rw io.ReadWriter) {
	t.rw = rw
	if d, ok := rw.(readDeadliner); ok {
		t.deadline = d
	}
}

// WritePacket emits one frame carrying packetID and body.
func (t *Transport) WritePacket(packetID int32, body []byte) error {
	var frame bytes.Buffer

	if t.threshold < 0 {
		length := int32(VarIntSize(packetID) + len(body))
		if _, err := WriteVarInt(&frame, length); err != nil {
			return err
		}
		if _, err := WriteVarInt(&frame, packetID); err != nil {
			return err
		}
		frame.Write(body)
		return t.flush(frame.Bytes())
	}

	var inner bytes.Buffer
	inner.Grow(VarIntSize(packetID) + len(body))
	if _, err := WriteVarInt(&inner, packetID); err != nil {
		return err
	}
	inner.Write(body)

	if inner.Len() < t.threshold {
		// Below threshold: data-length 0 marks the tail as uncompressed.
		if _, err := WriteVarInt(&frame, int32(1+inner.Len())); err != nil {
			return err
		}
		if _, err := WriteVarInt(&frame, 0); err != nil {
			return err
		}
		frame.Write(inner.Bytes())
		return t.flush(frame.Bytes())
	}

	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	if _, err := zw.Write(inner.Bytes()); err != nil {
		return fmt.Errorf("compress frame: %w", errors.Join(ErrDeflate, err))
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compress frame: %w", errors.Join(ErrDeflate, err))
	}

	innerLen := int32(inner.Len())
	if _, err := WriteVarInt(&frame, int32(VarIntSize(innerLen)+compressed.Len())); err != nil {
		return err
	}
	if _, err := WriteVarInt(&frame, innerLen); err != nil {
		return err
	}
	frame.Write(compressed.Bytes())
	return t.flush(frame.Bytes())
}

func (t *Transport) flush(frame []byte) error {
	n, err := t.rw.Write(frame)
	if err != nil {
		return fmt.Errorf("write frame: %w", errors.Join(ErrSocketClosed, err))
	}
	if n < len(frame) {
		return fmt.Errorf("write frame: %d of %d bytes: %w", n, len(frame), ErrShortWrite)
	}
	return nil
}

// ReadPacket reads one frame and returns its packet id and payload. The
// wait for a frame's first byte is unbounded; once a frame has started,
// every further read renews the inter-read budget.
func (t *Transport) ReadPacket() (int32, []byte, error) {
	total, _, err := t.readFrameLength()
	if err != nil {
		return 0, nil, fmt.Errorf("read frame length: %w", err)
	}
	if total < 1 || total > maxFrameBytes {
		return 0, nil, fmt.Errorf("frame length %d out of range: %w", total, ErrMalformed)
	}

	frame := make([]byte, total)
	if err := t.readFull(frame); err != nil {
		return 0, nil, fmt.Errorf("read frame body: %w", err)
	}

	buf := bytes.NewReader(frame)
	if t.threshold >= 0 {
		dataLength, _, err := ReadVarInt(buf)
		if err != nil {
			return 0, nil, fmt.Errorf("read data length: %w", err)
		}
		if dataLength != 0 {
			inflated, err := inflate(buf, int(dataLength))
			if err != nil {
				return 0, nil, err
			}
			buf = bytes.NewReader(inflated)
		}
	}

	packetID, _, err := ReadVarInt(buf)
	if err != nil {
		return 0, nil, fmt.Errorf("read packet id: %w", err)
	}
	body := make([]byte, buf.Len())
	if _, err := io.ReadFull(buf, body); err != nil {
		return 0, nil, fmt.Errorf("read packet body: %w", eof(err))
	}
	return packetID, body, nil
}

func inflate(r io.Reader, dataLength int) ([]byte, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("open inflater: %w", errors.Join(ErrInflate, err))
	}
	defer zr.Close()

	inflated := make([]byte, dataLength)
	n, err := io.ReadFull(zr, inflated)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("inflate frame: %w", errors.Join(ErrInflate, err))
	}
	if n != dataLength {
		return nil, fmt.Errorf("inflated %d bytes, declared %d: %w", n, dataLength, ErrMalformed)
	}
	return inflated, nil
}

// readFull reads len(p) bytes, renewing the inter-read deadline before each
// underlying read.
func (t *Transport) readFull(p []byte) error {
	read := 0
	for read < len(p) {
		t.armDeadline()
		n, err := t.rw.Read(p[read:])
		read += n
		if err != nil {
			return t.readErr(err)
		}
	}
	return nil
}

func (t *Transport) readFrameLength() (int32, int, error) {
	var result uint32
	var numRead int
	buf := make([]byte, 1)

	for {
		if numRead == 0 {
			t.clearDeadline()
		} else {
			t.armDeadline()
		}
		if _, err := io.ReadFull(t.rw, buf); err != nil {
			return 0, numRead, t.readErr(err)
		}
		numRead++

		result |= uint32(buf[0]&segmentBits) << (7 * (numRead - 1))

		if buf[0]&continueBit == 0 {
			break
		}

		if numRead >= MaxVarIntBytes {
			return 0, numRead, fmt.Errorf("varint exceeds %d bytes: %w", MaxVarIntBytes, ErrOverflow)
		}
	}

	return int32(result), numRead, nil
}

func (t *Transport) armDeadline() {
	if t.deadline != nil {
		_ = t.deadline.SetReadDeadline(time.Now().Add(interReadBudget))
	}
}

func (t *Transport) clearDeadline() {
	if t.deadline != nil {
		_ = t.deadline.SetReadDeadline(time.Time{})
	}
}

func (t *Transport) readErr(err error) error {
	var timeout interface{ Timeout() bool }
	if errors.As(err, &timeout) && timeout.Timeout() {
		return fmt.Errorf("inter-read budget exhausted: %w", ErrTimedOut)
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF || err == io.ErrClosedPipe {
		return fmt.Errorf("stream ended: %w", ErrSocketClosed)
	}
	return err
}
