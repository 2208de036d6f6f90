package system

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Key is a Linux input event key code (input-event-codes.h).
type Key uint16

const (
	KeyEsc Key = 1
	KeyQ   Key = 16
	KeyF4  Key = 62
)

func (k Key) String() string {
	switch k {
	case KeyEsc:
		return "Esc"
	case KeyQ:
		return "Q"
	case KeyF4:
		return "F4"
	}
	return fmt.Sprintf("key(%d)", uint16(k))
}

// ParseKey accepts the names printed by String. An empty name means no
// exit key.
func ParseKey(name string) (Key, bool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return 0, false, nil
	case "esc", "escape":
		return KeyEsc, true, nil
	case "q":
		return KeyQ, true, nil
	case "f4":
		return KeyF4, true, nil
	}
	return 0, false, fmt.Errorf("unknown exit key %q", name)
}

const evKey = 0x01

// keyPressed scans a buffer of input_event records (timeval, u16 type,
// u16 code, s32 value) for a key-down of key.
func keyPressed(buf []byte, tvSize int, key Key) bool {
	size := tvSize + 8
	for off := 0; off+size <= len(buf); off += size {
		rec := buf[off : off+size]
		typ := binary.LittleEndian.Uint16(rec[tvSize:])
		code := binary.LittleEndian.Uint16(rec[tvSize+2:])
		value := int32(binary.LittleEndian.Uint32(rec[tvSize+4:]))
		if typ == evKey && Key(code) == key && value == 1 {
			return true
		}
	}
	return false
}
