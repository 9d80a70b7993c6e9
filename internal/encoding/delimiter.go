package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// SniffDelimiter picks ';' or ',' for CSV text by counting both outside quotes on the
// first non-empty line. Ties go to ','.
func SniffDelimiter(sample []byte) rune {
	var line []byte

	for l := range bytes.SplitSeq(sample, []byte("\n")) {
		if len(bytes.TrimSpace(l)) > 0 {
			line = l
			break
		}
	}

	var commas, semicolons int

	quoted := false

	for _, c := range line {
		switch c {
		case '"':
			quoted = !quoted
		case ',':
			if !quoted {
				commas++
			}
		case ';':
			if !quoted {
				semicolons++
			}
		}
	}

	if semicolons > commas {
		return ';'
	}

	return ','
}

// NewCSVReader decodes r to UTF-8 and reports the delimiter the text appears to use.
func NewCSVReader(r io.Reader) (io.Reader, rune, error) {
	decoded, _, err := NewUTF8Reader(r)
	if err != nil {
		return nil, 0, err
	}

	br := bufio.NewReaderSize(decoded, SampleSize)

	sample, err := br.Peek(SampleSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, 0, fmt.Errorf("peeking decoded input: %w", err)
	}

	return br, SniffDelimiter(sample), nil
}
