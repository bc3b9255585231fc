package fetcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"utf8", []byte("März"), "März"},
		{"utf8 bom", []byte("\xef\xbb\xbfMärz"), "März"},
		{"utf16le bom", []byte{0xFF, 0xFE, 'H', 0, 'i', 0}, "Hi"},
		{"latin1", []byte("M\xe4rz"), "März"},
		{"cp1252 euro", []byte("5 \x80"), "5 €"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}
