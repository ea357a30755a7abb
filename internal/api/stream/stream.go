package stream

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformedLine is returned for a line that is not an unsigned decimal integer.
var ErrMalformedLine = errors.New("malformed sample line")

// AppendSample appends the wire form of sample, newline included, to dst.
func AppendSample(dst []byte, sample uint64) []byte {
	dst = strconv.AppendUint(dst, sample, 10)

	return append(dst, '\n')
}

// ParseSample decodes one line. Surrounding whitespace, including "\r\n", is ignored.
func ParseSample(line string) (uint64, error) {
	text := strings.TrimSpace(line)

	sample, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", ErrMalformedLine, text, err)
	}

	return sample, nil
}

// Encoder writes samples with exactly one Write call per sample.
type Encoder struct {
	w   io.Writer
	buf []byte
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		w:   w,
		buf: make([]byte, 0, 24),
	}
}

// Encode writes one sample line.
func (e *Encoder) Encode(sample uint64) error {
	e.buf = AppendSample(e.buf[:0], sample)

	if _, err := e.w.Write(e.buf); err != nil {
		return fmt.Errorf("write sample: %w", err)
	}

	return nil
}

// Decoder reads sample lines one at a time.
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		r: bufio.NewReader(r),
	}
}

// Decode blocks until a full line is available and parses it.
// It returns io.EOF once the producer is gone and no partial line is left.
// A final line without a trailing newline is still decoded.
// Errors wrapping ErrMalformedLine leave the decoder usable for the next line.
func (d *Decoder) Decode() (uint64, error) {
	line, err := d.r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("read sample: %w", err)
		}

		if strings.TrimSpace(line) == "" {
			return 0, io.EOF
		}
	}

	return ParseSample(line)
}
