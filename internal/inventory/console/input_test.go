package console

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tooLongMarker = "<too long>"

// readAll drains a lineReader, replacing over-long lines with tooLongMarker.
func readAll(t *testing.T, lr *lineReader) []string {
	t.Helper()
	var lines []string
	for {
		line, err := lr.readLine(context.Background())
		switch {
		case errors.Is(err, io.EOF):
			return lines
		case errors.Is(err, errLineTooLong):
			lines = append(lines, tooLongMarker)
		default:
			require.NoError(t, err)
			lines = append(lines, line)
		}
	}
}

func TestLineReader(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		maxLine  int
		expected []string
	}{
		{name: "empty input", input: "", maxLine: 10},
		{name: "lines with terminators", input: "abc\n\nd e\n", maxLine: 10, expected: []string{"abc", "", "d e"}},
		{name: "crlf and unterminated last line", input: "a\r\nb", maxLine: 10, expected: []string{"a", "b"}},
		{name: "line at the limit", input: "abc\n", maxLine: 3, expected: []string{"abc"}},
		{name: "over-long line is skipped", input: "abcd\nok\n", maxLine: 3, expected: []string{tooLongMarker, "ok"}},
		{name: "over-long last line", input: "ok\nabcd", maxLine: 3, expected: []string{"ok", tooLongMarker}},
		{
			name:     "line longer than the read buffer",
			input:    strings.Repeat("x", 10000) + "\nend\n",
			maxLine:  20000,
			expected: []string{strings.Repeat("x", 10000), "end"},
		},
		{
			name:     "over-long line longer than the read buffer",
			input:    strings.Repeat("x", 10000) + "\nend\n",
			maxLine:  5000,
			expected: []string{tooLongMarker, "end"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			lr := newLineReader(strings.NewReader(tc.input), tc.maxLine)
			defer lr.close()
			// when
			lines := readAll(t, lr)
			// then
			assert.Equal(t, tc.expected, lines)
		})
	}
}

func Test_parseInt(t *testing.T) {
	testCases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "0", want: 0},
		{in: "-7", want: -7},
		{in: "2147483647", want: 2147483647},
		{in: "2147483648", wantErr: true},
		{in: "-2147483649", wantErr: true},
		{in: "1 2", wantErr: true},
		{in: "1.5", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseInt(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func Test_priceInRange(t *testing.T) {
	testCases := map[string]bool{
		"0":                     true,
		"2.50":                  true,
		"1e5":                   true,
		"999999999999999.99":    true,
		"0.000000000000000001":  true,
		"1234567890123456":      false,
		"1e15":                  false,
		"1e50000000":            false,
		"1e-50000000":           false,
		"0.1234567890123456789": false,
	}

	for in, expected := range testCases {
		assert.Equal(t, expected, priceInRange(decimal.RequireFromString(in)), "price %s", in)
	}
}
