package index

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/go-grit/grit/pkg/atomicio"
	"github.com/go-grit/grit/pkg/objects"
	"github.com/go-grit/grit/pkg/scpath"
)

const (
	signature     = "DIRC"
	version       = 2
	headerSize    = 12 // signature(4) + version(4) + count(4)
	entryFixedLen = 62 // 10 * u32 + 20-byte id + u16 flags
)

// encode writes the full DIRC v2 byte stream, including the trailing
// checksum, for the given path-ordered entries.
func encode(entries []*Entry) ([]byte, error) {
	var buf bytes.Buffer
	cw := atomicio.NewChecksumWriter(&buf)

	header := make([]byte, headerSize)
	copy(header[:4], signature)
	binary.BigEndian.PutUint32(header[4:8], version)
	binary.BigEndian.PutUint32(header[8:12], uint32(len(entries)))
	if _, err := cw.Write(header); err != nil {
		return nil, err
	}

	for _, e := range entries {
		if err := encodeEntry(cw, e); err != nil {
			return nil, err
		}
	}

	if err := cw.Finalize(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func encodeEntry(w *atomicio.ChecksumWriter, e *Entry) error {
	fixed := make([]byte, entryFixedLen)
	binary.BigEndian.PutUint32(fixed[0:4], e.CtimeSec)
	binary.BigEndian.PutUint32(fixed[4:8], e.CtimeNsec)
	binary.BigEndian.PutUint32(fixed[8:12], e.MtimeSec)
	binary.BigEndian.PutUint32(fixed[12:16], e.MtimeNsec)
	binary.BigEndian.PutUint32(fixed[16:20], e.Dev)
	binary.BigEndian.PutUint32(fixed[20:24], e.Ino)
	binary.BigEndian.PutUint32(fixed[24:28], uint32(e.Mode))
	binary.BigEndian.PutUint32(fixed[28:32], e.Uid)
	binary.BigEndian.PutUint32(fixed[32:36], e.Gid)
	binary.BigEndian.PutUint32(fixed[36:40], e.Size)
	copy(fixed[40:60], e.Id[:])

	path := []byte(e.Path.String())
	flags := len(path)
	if flags > 0x0FFF {
		flags = 0x0FFF
	}
	binary.BigEndian.PutUint16(fixed[60:62], uint16(flags))

	if _, err := w.Write(fixed); err != nil {
		return err
	}
	if _, err := w.Write(path); err != nil {
		return err
	}

	padded := nextMultipleOf8(entryFixedLen + len(path) + 1)
	padding := make([]byte, padded-(entryFixedLen+len(path)))
	_, err := w.Write(padding)
	return err
}

func nextMultipleOf8(n int) int {
	return (n + 7) &^ 7
}

// decode parses a full DIRC v2 byte stream and validates its trailing
// checksum.
func decode(data []byte) ([]*Entry, error) {
	if len(data) < headerSize+atomicio.ChecksumSize {
		return nil, fmt.Errorf("index file too short")
	}

	payload := data[:len(data)-atomicio.ChecksumSize]
	trailer := data[len(data)-atomicio.ChecksumSize:]

	cr := atomicio.NewChecksumReader(bytes.NewReader(payload))
	header := make([]byte, headerSize)
	if _, err := fullRead(cr, header); err != nil {
		return nil, err
	}
	if string(header[:4]) != signature {
		return nil, fmt.Errorf("bad index signature %q", header[:4])
	}
	v := binary.BigEndian.Uint32(header[4:8])
	if v != version {
		return nil, fmt.Errorf("unsupported index version %d", v)
	}
	count := binary.BigEndian.Uint32(header[8:12])

	entries := make([]*Entry, 0, count)
	for i := uint32(0); i < count; i++ {
		e, err := decodeEntry(cr)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		entries = append(entries, e)
	}

	if err := cr.Verify(trailer); err != nil {
		return nil, err
	}

	return entries, nil
}

func decodeEntry(r *atomicio.ChecksumReader) (*Entry, error) {
	fixed := make([]byte, entryFixedLen)
	if _, err := fullRead(r, fixed); err != nil {
		return nil, err
	}

	e := &Entry{
		CtimeSec:  binary.BigEndian.Uint32(fixed[0:4]),
		CtimeNsec: binary.BigEndian.Uint32(fixed[4:8]),
		MtimeSec:  binary.BigEndian.Uint32(fixed[8:12]),
		MtimeNsec: binary.BigEndian.Uint32(fixed[12:16]),
		Dev:       binary.BigEndian.Uint32(fixed[16:20]),
		Ino:       binary.BigEndian.Uint32(fixed[20:24]),
		Mode:      objects.FileMode(binary.BigEndian.Uint32(fixed[24:28])),
		Uid:       binary.BigEndian.Uint32(fixed[28:32]),
		Gid:       binary.BigEndian.Uint32(fixed[32:36]),
		Size:      binary.BigEndian.Uint32(fixed[36:40]),
	}
	copy(e.Id[:], fixed[40:60])
	flags := binary.BigEndian.Uint16(fixed[60:62])
	nameLen := int(flags & 0x0FFF)

	var name []byte
	if nameLen < 0x0FFF {
		name = make([]byte, nameLen)
		if _, err := fullRead(r, name); err != nil {
			return nil, err
		}
		padded := nextMultipleOf8(entryFixedLen + nameLen + 1)
		padding := make([]byte, padded-(entryFixedLen+nameLen))
		if _, err := fullRead(r, padding); err != nil {
			return nil, err
		}
	} else {
		// Name length overflowed the 12-bit field; read until NUL.
		var buf bytes.Buffer
		one := make([]byte, 1)
		for {
			if _, err := fullRead(r, one); err != nil {
				return nil, err
			}
			if one[0] == 0 {
				break
			}
			buf.WriteByte(one[0])
		}
		name = buf.Bytes()
		total := entryFixedLen + len(name) + 1
		padded := nextMultipleOf8(total)
		if padded > total {
			padding := make([]byte, padded-total)
			if _, err := fullRead(r, padding); err != nil {
				return nil, err
			}
		}
	}

	p, err := scpath.NewRelativePath(string(name))
	if err != nil {
		return nil, err
	}
	e.Path = p

	return e, nil
}

func fullRead(r interface{ Read([]byte) (int, error) }, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
