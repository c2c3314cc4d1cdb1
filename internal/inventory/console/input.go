package console

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// maxLineBytes caps one input line. Longer lines are discarded and reported as invalid input.
	maxLineBytes = 1 << 20

	// Prices outside these bounds are rejected as invalid input.
	maxPriceIntegerDigits = 15
	maxPriceScale         = 18
)

// errLineTooLong is returned by readLine for a line over the reader's limit. The session continues.
var errLineTooLong = errors.New("input line too long")

type inputLine struct {
	text    string
	tooLong bool
}

// lineReader scans input on its own goroutine so that a pending read can be abandoned on cancellation.
type lineReader struct {
	lines   chan inputLine
	done    chan struct{}
	maxLine int
	err     error // written before lines is closed
}

func newLineReader(r io.Reader, maxLine int) *lineReader {
	lr := &lineReader{
		lines:   make(chan inputLine),
		done:    make(chan struct{}),
		maxLine: maxLine,
	}
	go lr.scan(r)
	return lr
}

func (lr *lineReader) scan(r io.Reader) {
	defer close(lr.lines)
	br := bufio.NewReader(r)
	for {
		line, err := lr.next(br)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				lr.err = err
			}
			return
		}
		select {
		case lr.lines <- line:
		case <-lr.done:
			return
		}
	}
}

// next reads up to and including '\n'. Content beyond maxLine is drained and the line marked too long.
// A final line without a terminator is returned as is; io.EOF means nothing was left.
func (lr *lineReader) next(br *bufio.Reader) (inputLine, error) {
	var (
		buf     []byte
		read    int
		tooLong bool
	)
	for {
		chunk, err := br.ReadSlice('\n')
		read += len(chunk)
		if !tooLong {
			buf = append(buf, chunk...)
			if len(bytes.TrimRight(buf, "\r\n")) > lr.maxLine {
				tooLong, buf = true, nil
			}
		}
		switch {
		case err == nil:
			return lr.finish(buf, tooLong), nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF) && read > 0:
			return lr.finish(buf, tooLong), nil
		default:
			return inputLine{}, err
		}
	}
}

func (lr *lineReader) finish(buf []byte, tooLong bool) inputLine {
	if tooLong {
		return inputLine{tooLong: true}
	}
	return inputLine{text: strings.TrimSuffix(string(bytes.TrimSuffix(buf, []byte("\n"))), "\r")}
}

// readLine returns the next line without its line terminator, errLineTooLong for an over-long line,
// io.EOF once input is exhausted, or the context error.
func (lr *lineReader) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-lr.lines:
		if !ok {
			if lr.err != nil {
				return "", fmt.Errorf("read input: %w", lr.err)
			}
			return "", io.EOF
		}
		if line.tooLong {
			return "", errLineTooLong
		}
		return line.text, nil
	}
}

func (lr *lineReader) close() {
	close(lr.done)
}

// readToken reads a line for numeric parsing. An over-long line comes back empty so that it fails to parse.
func (c *Console) readToken(ctx context.Context) (string, error) {
	line, err := c.in.readLine(ctx)
	if errors.Is(err, errLineTooLong) {
		return "", nil
	}
	return strings.TrimSpace(line), err
}

// parseInt accepts whole numbers in the 32-bit range.
func parseInt(s string) (int, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	return int(v), err
}

// readChoice reads a menu choice, re-prompting until the line holds a single integer.
// The caller prints the first prompt.
func (c *Console) readChoice(ctx context.Context) (int, error) {
	for {
		token, err := c.readToken(ctx)
		if err != nil {
			return 0, err
		}
		choice, convErr := parseInt(token)
		if convErr == nil {
			return choice, nil
		}
		c.println("Invalid input. Please enter a number.")
		c.print("Enter your choice: ")
	}
}

// readInt prompts until a non-negative whole number is entered.
func (c *Console) readInt(ctx context.Context, prompt string) (int, error) {
	for {
		c.print(prompt)
		token, err := c.readToken(ctx)
		if err != nil {
			return 0, err
		}
		value, convErr := parseInt(token)
		switch {
		case convErr != nil:
			c.println("Invalid input. Please enter a whole number.")
		case value < 0:
			c.println("Value cannot be negative. Please try again.")
		default:
			return value, nil
		}
	}
}

// priceInRange bounds the integer digits and the scale without expanding the value.
func priceInRange(d decimal.Decimal) bool {
	exp := int64(d.Exponent())
	if exp < -maxPriceScale {
		return false
	}
	return int64(d.NumDigits())+exp <= maxPriceIntegerDigits
}

// readDecimal prompts until a non-negative number of sensible size is entered.
func (c *Console) readDecimal(ctx context.Context, prompt string) (decimal.Decimal, error) {
	for {
		c.print(prompt)
		token, err := c.readToken(ctx)
		if err != nil {
			return decimal.Zero, err
		}
		value, convErr := decimal.NewFromString(token)
		switch {
		case convErr != nil, !priceInRange(value):
			c.println("Invalid input. Please enter a numeric value.")
		case value.IsNegative():
			c.println("Value cannot be negative. Please try again.")
		default:
			return value, nil
		}
	}
}

// readString returns the whole line as typed, re-prompting after an over-long line.
func (c *Console) readString(ctx context.Context, prompt string) (string, error) {
	for {
		c.print(prompt)
		line, err := c.in.readLine(ctx)
		if !errors.Is(err, errLineTooLong) {
			return line, err
		}
		c.printf("Input is too long (limit %d bytes). Please try again.\n", c.in.maxLine)
	}
}
