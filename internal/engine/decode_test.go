package engine

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/encoding/unicode"
)

func TestDecodeText(t *testing.T) {
	wide, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String("# TODO: wide\n")
	if err != nil {
		t.Fatalf("encode utf-16: %v", err)
	}
	wideBE, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder().String("# TODO: big\n")
	if err != nil {
		t.Fatalf("encode utf-16be: %v", err)
	}

	cases := map[string]struct {
		in      []byte
		want    string
		wantErr error
	}{
		"plain":          {in: []byte("hello\n"), want: "hello\n"},
		"utf8 bom":       {in: append([]byte{0xEF, 0xBB, 0xBF}, "x := 1"...), want: "x := 1"},
		"utf16 le":       {in: []byte(wide), want: "# TODO: wide\n"},
		"utf16 be":       {in: []byte(wideBE), want: "# TODO: big\n"},
		"nul byte":       {in: []byte("ab\x00cd"), wantErr: errBinary},
		"invalid utf8":   {in: []byte{0xff, 0xfd, 0x41}, wantErr: errInvalidUTF8},
		"multibyte text": {in: []byte("// TODO: 修正する"), want: "// TODO: 修正する"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := decodeText(tc.in)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("err = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("decodeText = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	cases := map[string][]string{
		"":             nil,
		"one":          {"one"},
		"one\n":        {"one"},
		"a\r\nb\r\n":   {"a", "b"},
		"a\n\nb":       {"a", "", "b"},
		"trailing\n\n": {"trailing", ""},
	}
	for in, want := range cases {
		if diff := cmp.Diff(want, splitLines(in)); diff != "" {
			t.Fatalf("splitLines(%q) mismatch (-want +got):\n%s", in, diff)
		}
	}
}
