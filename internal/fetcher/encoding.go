package fetcher

import (
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decode converts raw file bytes to UTF-8. A UTF-8 or UTF-16 byte order
// mark is honored and stripped. Input without a BOM that is not valid UTF-8
// is read as Windows-1252, which covers Latin-1 spreadsheet exports.
func Decode(data []byte) ([]byte, error) {
	if hasBOM(data) {
		out, err := io.ReadAll(transform.NewReader(bytes.NewReader(data),
			unicode.BOMOverride(unicode.UTF8.NewDecoder())))
		if err != nil {
			return nil, eris.Wrap(err, "decode: bom")
		}
		return out, nil
	}
	if utf8.Valid(data) {
		return data, nil
	}
	out, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err != nil {
		return nil, eris.Wrap(err, "decode: windows-1252")
	}
	return out, nil
}

func hasBOM(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) ||
		bytes.HasPrefix(data, []byte{0xFE, 0xFF}) ||
		bytes.HasPrefix(data, []byte{0xFF, 0xFE})
}
