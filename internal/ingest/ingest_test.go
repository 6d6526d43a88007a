package ingest_test

import (
	"errors"
	"testing"

	"lexclause/internal/ingest"
)

func TestPDFEmptyPayload(t *testing.T) {
	_, err := ingest.PDF(nil)
	if !errors.Is(err, ingest.ErrDecode) {
		t.Fatalf("error = %v, want ErrDecode", err)
	}

	_, err = ingest.PDF([]byte{})
	if !errors.Is(err, ingest.ErrDecode) {
		t.Fatalf("error = %v, want ErrDecode", err)
	}
}

func TestPDFInvalidPayload(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"not a pdf", []byte("this is plain text, not a document")},
		{"truncated header", []byte("%PDF-")},
		{"binary garbage", []byte{0x00, 0x01, 0x02, 0x03, 0xff, 0xfe}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ingest.PDF(tt.data)
			if !errors.Is(err, ingest.ErrDecode) {
				t.Errorf("error = %v, want ErrDecode", err)
			}
		})
	}
}
