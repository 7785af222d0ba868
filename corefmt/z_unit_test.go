package corefmt

import (
	"bytes"
	"testing"
)

func TestTextEncodings(t *testing.T) {
	raw := []byte{0x00, 0xff, 0x10, 0x20, 0x7f}

	if got := EncodeBase64(raw); got != "AP8QIH8=" {
		t.Fatalf("base64: %q", got)
	}
	if got := EncodeHex(raw); got != "00ff10207f" {
		t.Fatalf("hex: %q", got)
	}
	if got, err := DecodeBase64URL(EncodeBase64URL(raw)); err != nil || !bytes.Equal(got, raw) {
		t.Fatalf("base64url round trip: %x err=%v", got, err)
	}
	if _, err := DecodeBase64URL("not a token!!"); err == nil {
		t.Fatalf("expected base64url decode error")
	}
}

func TestUint64BigEndian(t *testing.T) {
	b := AppendUint64(nil, 0x0102030405060708)
	want := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if !bytes.Equal(b, want) {
		t.Fatalf("AppendUint64: %x", b)
	}

	b = AppendUint64(b, 0xDEADBEEF00000001)
	if v, ok := Uint64At(b, 0); !ok || v != 0x0102030405060708 {
		t.Fatalf("Uint64At(0): %x ok=%v", v, ok)
	}
	if v, ok := Uint64At(b, 8); !ok || v != 0xDEADBEEF00000001 {
		t.Fatalf("Uint64At(8): %x ok=%v", v, ok)
	}
	if _, ok := Uint64At(b, 9); ok {
		t.Fatalf("Uint64At past end should fail")
	}
	if _, ok := Uint64At(b, -1); ok {
		t.Fatalf("Uint64At negative offset should fail")
	}
}

func TestBlobFrameRoundTrip(t *testing.T) {
	payload := []byte("pcg32 snapshot payload")

	frame := EncodeBlobFrame(payload)
	got, err := DecodeBlobFrame(frame)
	if err != nil || !bytes.Equal(got, payload) {
		t.Fatalf("decode: %q err=%v", got, err)
	}

	// 空 payload 也要有合法 frame
	frame = EncodeBlobFrame(nil)
	got, err = DecodeBlobFrame(frame)
	if err != nil || len(got) != 0 {
		t.Fatalf("empty payload: %q err=%v", got, err)
	}
}

func TestBlobFrameTruncated(t *testing.T) {
	frame := EncodeBlobFrame([]byte("0123456789"))
	if _, err := DecodeBlobFrame(frame[:5]); err == nil {
		t.Fatalf("expected truncation error")
	}
	if _, err := DecodeBlobFrame(nil); err == nil {
		t.Fatalf("expected error for empty frame")
	}
}

func TestBlobFrameStream(t *testing.T) {
	payload := []byte{9, 8, 7, 6, 5}

	var buf bytes.Buffer
	if err := WriteBlobFrame(&buf, payload); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadBlobFrame(&buf, 1024)
	if err != nil || !bytes.Equal(got, payload) {
		t.Fatalf("read: %x err=%v", got, err)
	}

	// maxBytes 上限
	buf.Reset()
	if err := WriteBlobFrame(&buf, make([]byte, 100)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ReadBlobFrame(&buf, 10); err == nil {
		t.Fatalf("expected maxBytes error")
	}
}
