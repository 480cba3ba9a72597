package atomicio

import (
	"crypto/sha1"
	"fmt"
	"hash"
	"io"
)

// ChecksumSize is the length in bytes of the trailing SHA-1 checksum
// appended to the index file.
const ChecksumSize = 20

// ChecksumWriter hashes every byte written through it so the trailing
// checksum can be produced with Finalize without a second pass over the
// data.
type ChecksumWriter struct {
	w io.Writer
	h hash.Hash
}

func NewChecksumWriter(w io.Writer) *ChecksumWriter {
	return &ChecksumWriter{w: w, h: sha1.New()}
}

func (c *ChecksumWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	if n > 0 {
		c.h.Write(p[:n])
	}
	return n, err
}

// Finalize writes the running SHA-1 sum as a 20-byte trailer.
func (c *ChecksumWriter) Finalize() error {
	sum := c.h.Sum(nil)
	_, err := c.w.Write(sum)
	return err
}

// ChecksumReader hashes every byte read through it so Verify can compare
// the running sum against a trailer read separately by the caller.
type ChecksumReader struct {
	r io.Reader
	h hash.Hash
}

func NewChecksumReader(r io.Reader) *ChecksumReader {
	return &ChecksumReader{r: r, h: sha1.New()}
}

func (c *ChecksumReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.h.Write(p[:n])
	}
	return n, err
}

// Verify compares the running hash of everything read so far against
// trailer, which the caller is expected to have read (unhashed) from the
// same stream immediately after the payload.
func (c *ChecksumReader) Verify(trailer []byte) error {
	sum := c.h.Sum(nil)
	if len(trailer) != len(sum) {
		return fmt.Errorf("checksum trailer has wrong length: got %d want %d", len(trailer), len(sum))
	}
	for i := range sum {
		if sum[i] != trailer[i] {
			return fmt.Errorf("checksum mismatch")
		}
	}
	return nil
}
