// Package interpreter turns G-code style command lines into tool motion
// and collects the cutting moves into shapes.
package interpreter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/richard-senior/gcode2bmp/internal/logger"
	"github.com/richard-senior/gcode2bmp/pkg/assembler"
	"github.com/richard-senior/gcode2bmp/pkg/canvas"
	"github.com/richard-senior/gcode2bmp/pkg/geometry"
	"github.com/richard-senior/gcode2bmp/pkg/render"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUnknownOption  = errors.New("unknown option")
	ErrInvalidValue   = errors.New("invalid value")
	ErrMissingOption  = errors.New("missing option")
)

///////////////////////////////////////////////////////////////////////////////
/// POSITION
///////////////////////////////////////////////////////////////////////////////

// Position is the tool head location. Z below zero is inside the material.
type Position struct {
	X, Y, Z int
}

// Set overwrites the axis named by 'X', 'Y' or 'Z'
func (p *Position) Set(axis byte, v int) {
	switch axis {
	case 'X':
		p.X = v
	case 'Y':
		p.Y = v
	case 'Z':
		p.Z = v
	}
}

// Point drops the Z axis
func (p Position) Point() geometry.Point {
	return geometry.NewPoint(p.X, p.Y)
}

func (p Position) String() string {
	return fmt.Sprintf("X%d Y%d Z%d", p.X, p.Y, p.Z)
}

// Params maps an option letter to its value for a single command line
type Params map[byte]int

///////////////////////////////////////////////////////////////////////////////
/// INTERPRETER
///////////////////////////////////////////////////////////////////////////////

// Interpreter holds the machine state: tool position, spindle and the
// shapes cut so far. It is fed one line at a time and is not safe for
// concurrent use.
type Interpreter struct {
	position Position
	spindle  bool
	shapes   *assembler.Assembler

	width, height int

	line   int
	halted bool
	err    error
}

// New creates an interpreter that draws onto a width x height canvas
func New(width, height int) *Interpreter {
	return &Interpreter{
		shapes: assembler.New(),
		width:  width,
		height: height,
	}
}

// NewDefault creates an interpreter with the default canvas size
func NewDefault() *Interpreter {
	return New(canvas.DefaultSize, canvas.DefaultSize)
}

// AddCommand interprets one input line and reports whether the caller
// should keep supplying lines. It returns false after the end of program
// command and after any invalid line; from then on every line is ignored.
// An invalid line never changes the machine state.
func (ip *Interpreter) AddCommand(str string) bool {
	if ip.halted {
		return false
	}
	ip.line++

	m, ps, empty, err := parse(str)
	if err != nil {
		ip.err = fmt.Errorf("line %d: %w", ip.line, err)
		ip.halted = true
		logger.Error("%v", ip.err)
		return false
	}
	if empty {
		return true
	}

	commands[m].run(ip, ps)
	if m == M30 {
		ip.halted = true
		return false
	}
	return true
}

// parse validates a line completely before anything is executed
func parse(str string) (Mnemonic, Params, bool, error) {
	str = strings.TrimLeft(str, " \t")
	if i := strings.IndexByte(str, ';'); i >= 0 {
		str = str[:i]
	}
	fields := strings.Fields(str)
	if len(fields) == 0 {
		return 0, nil, true, nil
	}

	name := fields[0]
	m, ok := LookupMnemonic(name)
	if !ok {
		return 0, nil, false, fmt.Errorf("%w %q", ErrUnknownCommand, name)
	}

	ps := make(Params, len(fields)-1)
	for _, token := range fields[1:] {
		key, value := token[0], token[1:]
		if !m.Allows(key) {
			return 0, nil, false, fmt.Errorf("%w %q for command %q", ErrUnknownOption, string(key), name)
		}
		v, err := parseValue(value)
		if err != nil {
			return 0, nil, false, fmt.Errorf("%w %q for option %q of command %q", ErrInvalidValue, value, string(key), name)
		}
		ps[key] = v
	}

	for _, key := range []byte(commands[m].required) {
		if _, ok := ps[key]; !ok {
			return 0, nil, false, fmt.Errorf("%w %q for command %q", ErrMissingOption, string(key), name)
		}
	}
	return m, ps, false, nil
}

// parseValue accepts an optionally signed run of decimal digits
func parseValue(s string) (int, error) {
	digits := s
	if strings.HasPrefix(digits, "+") || strings.HasPrefix(digits, "-") {
		digits = digits[1:]
	}
	if digits == "" {
		return 0, strconv.ErrSyntax
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.Atoi(s)
}

// Draw renders every shape and writes the bitmap to path. Failure is
// logged and reported as false; the shapes are left untouched.
func (ip *Interpreter) Draw(path string) bool {
	shapes := ip.shapes.Shapes()
	c := render.Render(shapes, ip.width, ip.height)
	if err := c.Save(path); err != nil {
		logger.Error("Failed to save image: %v", err)
		return false
	}
	logger.Info("Wrote %d shapes to %s", len(shapes), path)
	return true
}

// Position returns the current tool position
func (ip *Interpreter) Position() Position {
	return ip.position
}

// SpindleOn reports whether the spindle is engaged
func (ip *Interpreter) SpindleOn() bool {
	return ip.spindle
}

// Shapes returns the shapes assembled so far
func (ip *Interpreter) Shapes() []*geometry.Shape {
	return ip.shapes.Shapes()
}

// Assembler exposes the endpoint index, mainly for inspection
func (ip *Interpreter) Assembler() *assembler.Assembler {
	return ip.shapes
}

// CanvasSize returns the dimensions Draw renders at
func (ip *Interpreter) CanvasSize() (int, int) {
	return ip.width, ip.height
}

// Halted reports whether the interpreter has stopped accepting lines
func (ip *Interpreter) Halted() bool {
	return ip.halted
}

// Err returns the error that stopped the interpreter, or nil
func (ip *Interpreter) Err() error {
	return ip.err
}

// Line is the number of lines consumed so far
func (ip *Interpreter) Line() int {
	return ip.line
}
