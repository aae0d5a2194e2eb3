package cpu

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseImage reads a program image: one decimal word per line.
// Negative values are stored in 16-bit two's complement. Blank lines are
// skipped, but still counted for error reporting.
func ParseImage(input io.Reader) (image []uint16, err error) {
	scanner := bufio.NewScanner(input)

	var lineno int
	for scanner.Scan() {
		lineno += 1
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}

		v64, perr := strconv.ParseInt(line, 10, 32)
		if perr != nil {
			err = &ErrImage{LineNo: lineno, Line: line, Err: ErrParseNumber(line)}
			return
		}

		if v64 > 0xffff || v64 < -0xffff {
			err = &ErrImage{LineNo: lineno, Line: line, Err: ErrImageRange}
			return
		}

		var word uint16
		if v64 < 0 {
			word = ^uint16(-v64) + 1
		} else {
			word = uint16(v64)
		}

		image = append(image, word)
	}

	err = scanner.Err()

	return
}

// WriteImage writes a program image, one unsigned decimal word per line.
func WriteImage(output io.Writer, image []uint16) (err error) {
	w := bufio.NewWriter(output)

	for _, word := range image {
		_, err = fmt.Fprintf(w, "%d\n", word)
		if err != nil {
			return
		}
	}

	err = w.Flush()

	return
}
