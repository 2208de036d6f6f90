package system

import (
	"encoding/binary"
	"errors"
	"testing"
)

var errNoop = errors.New("noop")

func TestParseKey(t *testing.T) {
	tests := []struct {
		in   string
		want Key
		ok   bool
		err  bool
	}{
		{"", 0, false, false},
		{"F4", KeyF4, true, false},
		{" escape ", KeyEsc, true, false},
		{"q", KeyQ, true, false},
		{"space", 0, false, true},
	}
	for _, tt := range tests {
		got, ok, err := ParseKey(tt.in)
		if (err != nil) != tt.err || ok != tt.ok || got != tt.want {
			t.Fatalf("ParseKey(%q) = %v, %t, %v", tt.in, got, ok, err)
		}
	}
	if KeyF4.String() != "F4" || Key(99).String() != "key(99)" {
		t.Fatal("key names")
	}
}

type recordLogger struct{ infos, errors int }

func (r *recordLogger) Infof(string, string, ...interface{})  { r.infos++ }
func (r *recordLogger) Errorf(string, string, ...interface{}) { r.errors++ }

func TestWithLog(t *testing.T) {
	l := &recordLogger{}
	if err := withLog(l, "x", nil); err != nil {
		t.Fatal(err)
	}
	if err := withLog(l, "x", errNoop); err != errNoop {
		t.Fatalf("err = %v", err)
	}
	if l.infos != 1 || l.errors != 1 {
		t.Fatalf("infos=%d errors=%d", l.infos, l.errors)
	}
	if err := withLog(nil, "x", errNoop); err != errNoop {
		t.Fatal("nil logger should pass the error through")
	}
}

func inputEvent(tvSize int, typ, code uint16, value int32) []byte {
	rec := make([]byte, tvSize+8)
	binary.LittleEndian.PutUint16(rec[tvSize:], typ)
	binary.LittleEndian.PutUint16(rec[tvSize+2:], code)
	binary.LittleEndian.PutUint32(rec[tvSize+4:], uint32(value))
	return rec
}

func TestKeyPressed(t *testing.T) {
	const tv = 16
	var buf []byte
	buf = append(buf, inputEvent(tv, 0x04, 4, 30)...)
	buf = append(buf, inputEvent(tv, evKey, uint16(KeyQ), 1)...) // q down
	buf = append(buf, inputEvent(tv, 0x00, 0, 0)...)

	if !keyPressed(buf, tv, KeyQ) {
		t.Fatal("q down not detected")
	}
	if keyPressed(buf, tv, KeyEsc) {
		t.Fatal("esc reported without an esc event")
	}
	release := inputEvent(tv, evKey, uint16(KeyQ), 0)
	if keyPressed(release, tv, KeyQ) {
		t.Fatal("key release counted as press")
	}
	if keyPressed(buf[:len(buf)-5], 8, KeyF4) {
		t.Fatal("truncated buffer")
	}
}
