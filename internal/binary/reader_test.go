package binary

import (
	"bytes"
	"errors"
	"testing"
)

func TestReaderReadByte(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	r := NewReader(data)

	for i, want := range data {
		if r.Position() != i {
			t.Errorf("position before read %d: got %d, want %d", i, r.Position(), i)
		}
		b, err := r.ReadByte()
		if err != nil {
			t.Fatalf("ReadByte %d: %v", i, err)
		}
		if b != want {
			t.Errorf("ReadByte %d: got 0x%02x, want 0x%02x", i, b, want)
		}
	}

	if r.Remaining() != 0 {
		t.Errorf("remaining: got %d, want 0", r.Remaining())
	}

	_, err := r.ReadByte()
	if !errors.Is(err, ErrShortRead) {
		t.Errorf("expected ErrShortRead, got %v", err)
	}
}

func TestReaderReadBytes(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	r := NewReader(data)

	got, err := r.ReadBytes(3)
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if !bytes.Equal(got, []byte{0x01, 0x02, 0x03}) {
		t.Errorf("ReadBytes: got %v, want [1 2 3]", got)
	}
	if r.Position() != 3 {
		t.Errorf("position: got %d, want 3", r.Position())
	}

	if _, err := r.ReadBytes(10); !errors.Is(err, ErrShortRead) {
		t.Errorf("past-end read: got %v, want ErrShortRead", err)
	}
	if _, err := r.ReadBytes(-1); !errors.Is(err, ErrShortRead) {
		t.Errorf("negative read: got %v, want ErrShortRead", err)
	}
}

func TestReaderFixedWidth(t *testing.T) {
	data := []byte{
		0xC4, 0x30, // u16
		0x78, 0x56, 0x34, 0x12, // u32
		0xFF, 0xFF, 0xFF, 0xFF, // i32 = -1
		0x01, // bool
	}
	r := NewReader(data)

	u16, err := r.ReadU16()
	if err != nil || u16 != 0x30C4 {
		t.Fatalf("ReadU16: got 0x%04x, %v; want 0x30C4", u16, err)
	}
	u32, err := r.ReadU32()
	if err != nil || u32 != 0x12345678 {
		t.Fatalf("ReadU32: got 0x%08x, %v; want 0x12345678", u32, err)
	}
	i32, err := r.ReadI32()
	if err != nil || i32 != -1 {
		t.Fatalf("ReadI32: got %d, %v; want -1", i32, err)
	}
	b, err := r.ReadBool()
	if err != nil || !b {
		t.Fatalf("ReadBool: got %v, %v; want true", b, err)
	}

	if _, err := r.ReadU32(); !errors.Is(err, ErrShortRead) {
		t.Errorf("exhausted ReadU32: got %v, want ErrShortRead", err)
	}
}

func TestReaderReadGUID(t *testing.T) {
	data := make([]byte, 16)
	for i := range data {
		data[i] = byte(i + 1)
	}
	r := NewReader(data)

	id, err := r.ReadGUID()
	if err != nil {
		t.Fatalf("ReadGUID: %v", err)
	}
	if !bytes.Equal(id[:], data) {
		t.Errorf("ReadGUID: got %v, want %v", id[:], data)
	}

	r = NewReader(data[:10])
	if _, err := r.ReadGUID(); !errors.Is(err, ErrShortRead) {
		t.Errorf("short GUID: got %v, want ErrShortRead", err)
	}
}

func TestReaderReadName(t *testing.T) {
	r := NewReader([]byte("MinHealth"))
	got, err := r.ReadName(9)
	if err != nil {
		t.Fatalf("ReadName: %v", err)
	}
	if got != "MinHealth" {
		t.Errorf("ReadName: got %q", got)
	}

	r = NewReader([]byte{0xff, 0xfe, 0x01})
	if _, err := r.ReadName(3); !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("invalid UTF-8: got %v, want ErrInvalidUTF8", err)
	}

	r = NewReader([]byte{0x41})
	if _, err := r.ReadName(2); !errors.Is(err, ErrShortRead) {
		t.Errorf("short name: got %v, want ErrShortRead", err)
	}
}

func TestReaderReadFString(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		r := NewReader([]byte{0x00, 0x00, 0x00, 0x00})
		got, err := r.ReadFString()
		if err != nil || got != "" {
			t.Fatalf("got %q, %v; want empty", got, err)
		}
	})

	t.Run("utf8", func(t *testing.T) {
		// length 7: "Engine" plus terminator
		buf := []byte{0x07, 0x00, 0x00, 0x00}
		buf = append(buf, []byte("Engine")...)
		buf = append(buf, 0x00)
		r := NewReader(buf)
		got, err := r.ReadFString()
		if err != nil || got != "Engine" {
			t.Fatalf("got %q, %v; want Engine", got, err)
		}
		if r.Remaining() != 0 {
			t.Errorf("remaining: got %d, want 0", r.Remaining())
		}
	})

	t.Run("utf16", func(t *testing.T) {
		// length -3: two code units "Hi" plus terminator, little-endian
		buf := []byte{0xFD, 0xFF, 0xFF, 0xFF}
		buf = append(buf, 'H', 0x00, 'i', 0x00, 0x00, 0x00)
		r := NewReader(buf)
		got, err := r.ReadFString()
		if err != nil || got != "Hi" {
			t.Fatalf("got %q, %v; want Hi", got, err)
		}
	})

	t.Run("truncated", func(t *testing.T) {
		r := NewReader([]byte{0x0A, 0x00, 0x00, 0x00, 'a', 'b'})
		if _, err := r.ReadFString(); !errors.Is(err, ErrShortRead) {
			t.Errorf("got %v, want ErrShortRead", err)
		}
	})

	t.Run("invalid utf8", func(t *testing.T) {
		r := NewReader([]byte{0x03, 0x00, 0x00, 0x00, 0xff, 0xfe, 0x00})
		if _, err := r.ReadFString(); !errors.Is(err, ErrInvalidUTF8) {
			t.Errorf("got %v, want ErrInvalidUTF8", err)
		}
	})
}

func TestParseError(t *testing.T) {
	r := NewReader([]byte{0x01})
	r.ReadByte()

	wrapped := r.WrapError("name table", ErrShortRead)
	var pe *ParseError
	if !errors.As(wrapped, &pe) {
		t.Fatalf("expected ParseError, got %T", wrapped)
	}
	if pe.Position != 1 || pe.Section != "name table" {
		t.Errorf("ParseError fields: %+v", pe)
	}
	if !errors.Is(wrapped, ErrShortRead) {
		t.Error("ParseError should unwrap to cause")
	}
}
