// Package textio handles the engine's I/O edges: reading whole inputs into
// memory, auto-detecting their encoding among a fixed candidate set, and
// writing UTF-8 output. Streaming is deliberately not supported; conversion
// operates on fully decoded text.
package textio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	textunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadInput reads the whole input into memory. Path "-" or "" means stdin.
func ReadInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// WriteOutput writes UTF-8 text. Path "-" or "" means stdout.
func WriteOutput(path, text string) error {
	if path == "" || path == "-" {
		_, err := io.WriteString(os.Stdout, text)
		return err
	}
	return os.WriteFile(path, []byte(text), 0o644)
}

// Decode converts raw input bytes to a UTF-8 string, detecting the encoding
// among UTF-8 (with or without BOM), UTF-16 LE/BE, GBK, and Big5.
func Decode(data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return string(data[3:]), nil
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return decodeWith(data, textunicode.UTF16(textunicode.LittleEndian, textunicode.ExpectBOM))
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return decodeWith(data, textunicode.UTF16(textunicode.BigEndian, textunicode.ExpectBOM))
	}
	if utf8.Valid(data) {
		return string(data), nil
	}

	// Legacy encodings: decode with both candidates and keep the one whose
	// output looks like real text. A wrong decode still produces Han runes,
	// so plain Han counting cannot tell them apart; hits against a set of
	// high-frequency characters can. GBK wins ties since it covers more of
	// the byte space.
	gbk, gbkErr := decodeWith(data, simplifiedchinese.GBK)
	big5, big5Err := decodeWith(data, traditionalchinese.Big5)
	switch {
	case gbkErr != nil && big5Err != nil:
		return "", fmt.Errorf("input is not UTF-8, UTF-16, GBK, or Big5")
	case gbkErr != nil:
		return big5, nil
	case big5Err != nil:
		return gbk, nil
	case commonHanCount(big5) > commonHanCount(gbk):
		return big5, nil
	default:
		return gbk, nil
	}
}

func decodeWith(data []byte, enc encoding.Encoding) (string, error) {
	decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", err
	}
	if bytes.ContainsRune(decoded, utf8.RuneError) {
		return "", fmt.Errorf("decoded text contains replacement characters")
	}
	return string(decoded), nil
}

// commonHan holds high-frequency characters in both simplified and
// traditional forms, used to score candidate decodes.
const commonHan = "的一是不了人我在有他这這那中文字们們个個国國说說為为时時和你会會就要于於出也得里裡後后自以来來去能对對都然没沒日月年天大小上下前学學生子心用家很想看体體简簡繁测測试試段话話言语語字词詞"

var commonHanSet = func() map[rune]bool {
	set := make(map[rune]bool)
	for _, r := range commonHan {
		set[r] = true
	}
	return set
}()

func commonHanCount(s string) int {
	n := 0
	for _, r := range s {
		if commonHanSet[r] {
			n++
		}
	}
	return n
}
