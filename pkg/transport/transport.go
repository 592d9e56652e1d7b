package transport

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/richard-senior/gcode2bmp/internal/logger"
)

// LineSource supplies input one physical line at a time. ReadLine returns
// io.EOF once the input is exhausted.
type LineSource interface {
	ReadLine() (string, error)
}

// ReaderSource reads lines from any io.Reader
type ReaderSource struct {
	reader *bufio.Reader
	lines  int
}

// NewLineSource wraps r. Line endings (\n or \r\n) are stripped and a
// final line without a terminator is still returned.
func NewLineSource(r io.Reader) *ReaderSource {
	return &ReaderSource{reader: bufio.NewReader(r)}
}

// NewStdioSource reads lines from standard input
func NewStdioSource() *ReaderSource {
	return NewLineSource(os.Stdin)
}

func (s *ReaderSource) ReadLine() (string, error) {
	line, err := s.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			s.lines++
			return strings.TrimSuffix(line, "\r"), nil
		}
		if err != io.EOF {
			logger.Error("Error reading input: %v", err)
		}
		return "", err
	}
	s.lines++
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// Lines is the number of lines returned so far
func (s *ReaderSource) Lines() int {
	return s.lines
}

// Consumer is anything that accepts lines and says whether it wants more,
// such as *interpreter.Interpreter
type Consumer interface {
	AddCommand(line string) bool
}

// Pump feeds lines from src to dst until the source is exhausted or dst
// asks to stop. It returns the read error, if any, other than io.EOF.
func Pump(src LineSource, dst Consumer) error {
	for {
		line, err := src.ReadLine()
		if err == io.EOF {
			logger.Debug("End of input")
			return nil
		}
		if err != nil {
			return err
		}
		if !dst.AddCommand(line) {
			return nil
		}
	}
}
