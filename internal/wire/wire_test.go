package wire

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func mustDecode(t *testing.T, b []byte) Entry {
	t.Helper()
	e, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	return e
}

func TestRoundTripShapes(t *testing.T) {
	cases := []Entry{
		{},
		{Data: []byte("hello")},
		{Data: []byte{0, 1, 2, 3}, Delta: 10, HasDelta: true},
		{Data: []byte("x"), Delta: 0, HasDelta: true},
		{Data: []byte("x"), Callbacks: []byte{0x90}, HasCallbacks: true},
		{Data: nil, HasCallbacks: true}, // present but empty list
		{Data: []byte("all"), Delta: 1 << 20, HasDelta: true, Callbacks: []byte("cbs"), HasCallbacks: true},
	}
	for i, tc := range cases {
		got := mustDecode(t, Encode(tc))
		if !bytes.Equal(got.Data, tc.Data) {
			t.Fatalf("case %d: data got %x want %x", i, got.Data, tc.Data)
		}
		if got.HasDelta != tc.HasDelta || got.Delta != tc.Delta {
			t.Fatalf("case %d: delta got (%v,%d) want (%v,%d)", i, got.HasDelta, got.Delta, tc.HasDelta, tc.Delta)
		}
		if got.HasCallbacks != tc.HasCallbacks || !bytes.Equal(got.Callbacks, tc.Callbacks) {
			t.Fatalf("case %d: callbacks got (%v,%x) want (%v,%x)", i, got.HasCallbacks, got.Callbacks, tc.HasCallbacks, tc.Callbacks)
		}
	}
}

func TestRejectsTrailingBytes(t *testing.T) {
	enc := Encode(Entry{Data: []byte("x")})
	enc = append(enc, 0xDE, 0xAD) // add junk
	if _, err := Decode(enc); err == nil {
		t.Fatalf("expected error on trailing bytes")
	}
}

func TestCorruptHeaders(t *testing.T) {
	enc := Encode(Entry{Data: []byte("abc"), Delta: 5, HasDelta: true})

	badMagic := append([]byte(nil), enc...)
	badMagic[0] = 'X'
	if _, err := Decode(badMagic); err == nil {
		t.Fatalf("expected error on bad magic")
	}

	badVer := append([]byte(nil), enc...)
	badVer[4] = version + 1
	if _, err := Decode(badVer); err == nil {
		t.Fatalf("expected error on bad version")
	}

	badFlags := append([]byte(nil), enc...)
	badFlags[5] |= 0x80
	if _, err := Decode(badFlags); err == nil {
		t.Fatalf("expected error on unknown flag bits")
	}

	if _, err := Decode([]byte("CST")); err == nil {
		t.Fatalf("expected error on short header")
	}
	if _, err := Decode([]byte("not-wire-format")); err == nil {
		t.Fatalf("expected error on foreign bytes")
	}
}

func TestCorruptLengths(t *testing.T) {
	enc := Encode(Entry{Data: []byte("abc")})

	// data length pointing past the end
	long := append([]byte(nil), enc...)
	binary.BigEndian.PutUint32(long[6:10], 1000)
	if _, err := Decode(long); err == nil {
		t.Fatalf("expected error on oversized data length")
	}

	// truncated payload
	if _, err := Decode(enc[:len(enc)-1]); err == nil {
		t.Fatalf("expected error on truncated data")
	}

	// callbacks flag set but no callbacks chunk
	noCB := append([]byte(nil), enc...)
	noCB[5] |= flagCallbacks
	if _, err := Decode(noCB); err == nil {
		t.Fatalf("expected error on missing callbacks chunk")
	}

	// delta flag set but header too short for it
	if _, err := Decode(append(append([]byte(nil), magic4[:]...), version, flagDelta, 0)); err == nil {
		t.Fatalf("expected error on truncated delta")
	}
}

func TestDecodeAliasesInput(t *testing.T) {
	enc := Encode(Entry{Data: []byte("abc")})
	e := mustDecode(t, enc)
	enc[10] = 'z'
	if e.Data[0] != 'z' {
		t.Fatalf("expected Data to alias the input buffer")
	}
}
