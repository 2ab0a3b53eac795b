package sink

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// FrameMagic opens every frame stream.
const FrameMagic = "CGFS"

const frameHeaderSize = 12

// Frame size limits. Headers beyond them are rejected before anything is
// allocated.
const (
	MaxFrameSide   = 1 << 14
	MaxFramePixels = 1 << 26
)

// ErrFrameHeader is wrapped by errors for headers outside the frame limits.
var ErrFrameHeader = errors.New("bad frame header")

// checkFrameSize reports whether a w×h frame is within the limits.
func checkFrameSize(w, h int) error {
	if w <= 0 || h <= 0 || w > MaxFrameSide || h > MaxFrameSide || w*h > MaxFramePixels {
		return fmt.Errorf("%w: %dx%d frame", ErrFrameHeader, w, h)
	}
	return nil
}

// maxPayload is the zstd worst-case compressed size of a w×h delta.
func maxPayload(w, h int) int {
	s := 4 * w * h
	return s + s>>8 + 64
}

var zstdEncoderLevel = zstd.SpeedBetterCompression

// FrameWriter appends zstd-compressed RGBA frames to a stream. Each frame is
// stored as the XOR against the previous frame of the same size, so a
// mostly static viewport compresses to a few bytes.
type FrameWriter struct {
	w       *bufio.Writer
	enc     *zstd.Encoder
	prev    []byte
	scratch []byte
	started bool
	frames  int
}

// NewFrameWriter returns a writer that encodes frames to w.
func NewFrameWriter(w io.Writer) (*FrameWriter, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstdEncoderLevel))
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	return &FrameWriter{w: bufio.NewWriter(w), enc: enc}, nil
}

// Present encodes one frame.
func (fw *FrameWriter) Present(pix []byte, width, height int) error {
	if err := checkFrameSize(width, height); err != nil {
		return fmt.Errorf("frame %d: %w", fw.frames, err)
	}
	if len(pix) != 4*width*height {
		return fmt.Errorf("frame %d: %d bytes for %dx%d", fw.frames, len(pix), width, height)
	}
	if !fw.started {
		if _, err := fw.w.WriteString(FrameMagic); err != nil {
			return fmt.Errorf("write magic: %w", err)
		}
		fw.started = true
	}
	fw.scratch = xorDelta(fw.scratch, pix, fw.prev)
	payload := fw.enc.EncodeAll(fw.scratch, nil)

	var hdr [frameHeaderSize]byte
	binary.LittleEndian.PutUint32(hdr[0:4], uint32(width))
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(height))
	binary.LittleEndian.PutUint32(hdr[8:12], uint32(len(payload)))
	if _, err := fw.w.Write(hdr[:]); err != nil {
		return fmt.Errorf("frame %d header: %w", fw.frames, err)
	}
	if _, err := fw.w.Write(payload); err != nil {
		return fmt.Errorf("frame %d payload: %w", fw.frames, err)
	}
	fw.prev = append(fw.prev[:0], pix...)
	fw.frames++
	return nil
}

// Frames returns the number of frames written.
func (fw *FrameWriter) Frames() int { return fw.frames }

// Close flushes buffered output and releases the encoder. It does not close
// the underlying writer.
func (fw *FrameWriter) Close() error {
	err := fw.w.Flush()
	fw.enc.Close()
	if err != nil {
		return fmt.Errorf("flush frames: %w", err)
	}
	return nil
}

// FrameReader decodes a stream written by FrameWriter.
type FrameReader struct {
	r       *bufio.Reader
	dec     *zstd.Decoder
	prev    []byte
	checked bool
}

// NewFrameReader returns a reader decoding frames from r.
func NewFrameReader(r io.Reader) (*FrameReader, error) {
	dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(4*MaxFramePixels))
	if err != nil {
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	return &FrameReader{r: bufio.NewReader(r), dec: dec}, nil
}

// Next returns the next frame. The returned slice is reused by the following
// call. At the end of the stream it returns io.EOF.
func (fr *FrameReader) Next() ([]byte, int, int, error) {
	if !fr.checked {
		var magic [len(FrameMagic)]byte
		if _, err := io.ReadFull(fr.r, magic[:]); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, 0, 0, io.EOF
			}
			return nil, 0, 0, fmt.Errorf("read magic: %w", err)
		}
		if string(magic[:]) != FrameMagic {
			return nil, 0, 0, fmt.Errorf("bad magic %q", magic[:])
		}
		fr.checked = true
	}
	var hdr [frameHeaderSize]byte
	if _, err := io.ReadFull(fr.r, hdr[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, 0, io.EOF
		}
		return nil, 0, 0, fmt.Errorf("frame header: %w", err)
	}
	w := int(binary.LittleEndian.Uint32(hdr[0:4]))
	h := int(binary.LittleEndian.Uint32(hdr[4:8]))
	n := int(binary.LittleEndian.Uint32(hdr[8:12]))
	if err := checkFrameSize(w, h); err != nil {
		return nil, 0, 0, err
	}
	if n > maxPayload(w, h) {
		return nil, 0, 0, fmt.Errorf("%w: %d byte payload for %dx%d", ErrFrameHeader, n, w, h)
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(fr.r, payload); err != nil {
		return nil, 0, 0, fmt.Errorf("frame payload: %w", err)
	}
	delta, err := fr.dec.DecodeAll(payload, make([]byte, 0, 4*w*h))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decode frame: %w", err)
	}
	if len(delta) != 4*w*h {
		return nil, 0, 0, fmt.Errorf("frame is %d bytes, want %dx%d", len(delta), w, h)
	}
	fr.prev = xorDelta(fr.prev, delta, fr.prev)
	return fr.prev, w, h, nil
}

// Close releases the decoder.
func (fr *FrameReader) Close() { fr.dec.Close() }

// xorDelta writes cur XOR prev into dst. A prev of another length counts as
// all zero. dst may alias prev.
func xorDelta(dst, cur, prev []byte) []byte {
	if cap(dst) < len(cur) {
		dst = make([]byte, len(cur))
	}
	dst = dst[:len(cur)]
	if len(prev) != len(cur) {
		copy(dst, cur)
		return dst
	}
	for i := range cur {
		dst[i] = cur[i] ^ prev[i]
	}
	return dst
}
