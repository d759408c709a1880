package progress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Save layout: uint32 highest unlocked level, then for each level in order
// one unlocked byte, one stars byte and a float32 best percentage.
// All multi-byte values are little-endian.
const (
	headerSize = 4
	recordSize = 1 + 1 + 4

	// SaveSize is the exact size of an encoded store.
	SaveSize = headerSize + LevelCount*recordSize
)

// ErrCorruptSave is returned when save data is truncated or holds values
// no valid store could have written.
var ErrCorruptSave = errors.New("progress: corrupt save data")

// MarshalBinary encodes the store in the save layout.
func (s *Store) MarshalBinary() ([]byte, error) {
	buf := make([]byte, SaveSize)
	binary.LittleEndian.PutUint32(buf, uint32(s.highestUnlocked))

	off := headerSize
	for _, rec := range s.records {
		if rec.Unlocked {
			buf[off] = 1
		}
		buf[off+1] = byte(rec.Stars)
		binary.LittleEndian.PutUint32(buf[off+2:], math.Float32bits(rec.BestPercentage))
		off += recordSize
	}
	return buf, nil
}

// UnmarshalBinary decodes save data into the store. On error the store is
// reset to defaults and the error wraps ErrCorruptSave. Bytes past SaveSize
// are ignored.
func (s *Store) UnmarshalBinary(data []byte) error {
	decoded, err := decode(data)
	if err != nil {
		s.Reset()
		return err
	}
	*s = *decoded
	return nil
}

func decode(data []byte) (*Store, error) {
	if len(data) < SaveSize {
		return nil, fmt.Errorf("%w: %d bytes, want %d", ErrCorruptSave, len(data), SaveSize)
	}

	s := NewStore()
	highest := binary.LittleEndian.Uint32(data)
	if highest < 1 || highest > LevelCount {
		return nil, fmt.Errorf("%w: highest unlocked level %d", ErrCorruptSave, highest)
	}

	off := headerSize
	for i := range s.records {
		level := i + 1
		unlocked := data[off]
		stars := data[off+1]
		pct := math.Float32frombits(binary.LittleEndian.Uint32(data[off+2:]))
		off += recordSize

		if unlocked > 1 {
			return nil, fmt.Errorf("%w: level %d unlocked flag %d", ErrCorruptSave, level, unlocked)
		}
		if stars > MaxStars {
			return nil, fmt.Errorf("%w: level %d has %d stars", ErrCorruptSave, level, stars)
		}
		if math.IsNaN(float64(pct)) || math.IsInf(float64(pct), 0) || pct < 0 {
			return nil, fmt.Errorf("%w: level %d percentage %v", ErrCorruptSave, level, pct)
		}

		s.records[i].Unlocked = unlocked == 1 || level == 1
		s.records[i].Stars = int(stars)
		s.records[i].BestPercentage = pct
	}

	s.recomputeHighest()
	return s, nil
}
