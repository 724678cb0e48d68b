// Package fileio reads and writes file contents as text with a fixed
// encoding policy: reads tolerate legacy single-byte content, writes are
// always byte-preserving Latin-1.
package fileio

import (
	"os"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/encoding/charmap"
)

// 📥 ReadText loads a file as text. The decoder ladder is: UTF-8 first,
// then ISO 8859-1, which maps every byte to a rune and therefore accepts
// any well-formed byte stream. A file that is not valid UTF-8 is never a
// read error, only a fallback.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Errorf("reading %s: %w", path, err)
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", errors.Errorf("decoding %s: %w", path, err)
	}
	return string(decoded), nil
}

// 📤 WriteText persists text using the ISO 8859-1 encoder regardless of
// how the content was read. Reads are encoding-tolerant inbound; writes
// are single-byte outbound, so a round trip through the fallback decoder
// reproduces the original bytes. Text containing runes above U+00FF
// cannot be represented and fails the write.
func WriteText(path string, text string) error {
	encoded, err := charmap.ISO8859_1.NewEncoder().String(text)
	if err != nil {
		return errors.Errorf("encoding %s: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(encoded), 0644); err != nil {
		return errors.Errorf("writing %s: %w", path, err)
	}
	return nil
}
