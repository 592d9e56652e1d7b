package interpreter

import (
	"strings"

	"github.com/richard-senior/gcode2bmp/internal/logger"
	"github.com/richard-senior/gcode2bmp/pkg/geometry"
)

// Mnemonic identifies a recognised command
type Mnemonic int

const (
	G00 Mnemonic = iota // rapid positioning
	G01                 // linear interpolation
	G02                 // clockwise arc
	G03                 // counter-clockwise arc
	G17                 // XY plane
	G21                 // millimetres
	G28                 // return home
	G90                 // absolute coordinates
	M03                 // spindle on
	M05                 // spindle off
	M30                 // end of program
	numMnemonics
)

type handler func(ip *Interpreter, ps Params)

// command describes one mnemonic: the option letters it accepts, the ones
// it cannot do without, and what it does
type command struct {
	name     string
	options  string
	required string
	run      handler
}

var commands = [numMnemonics]command{
	G00: {"G00", "XYZ", "", (*Interpreter).rapid},
	G01: {"G01", "XYZF", "", (*Interpreter).linear},
	G02: {"G02", "XYZIJF", "XYIJ", (*Interpreter).arcCW},
	G03: {"G03", "XYZIJF", "XYIJ", (*Interpreter).arcCCW},
	G17: {"G17", "", "", (*Interpreter).noop},
	G21: {"G21", "", "", (*Interpreter).noop},
	G28: {"G28", "XY", "", (*Interpreter).home},
	G90: {"G90", "", "", (*Interpreter).noop},
	M03: {"M03", "S", "", (*Interpreter).spindleOn},
	M05: {"M05", "", "", (*Interpreter).spindleOff},
	M30: {"M30", "", "", (*Interpreter).end},
}

var mnemonics = func() map[string]Mnemonic {
	ret := make(map[string]Mnemonic, numMnemonics)
	for m := Mnemonic(0); m < numMnemonics; m++ {
		ret[commands[m].name] = m
	}
	return ret
}()

// LookupMnemonic returns the mnemonic for a command word such as "G01"
func LookupMnemonic(name string) (Mnemonic, bool) {
	m, ok := mnemonics[name]
	return m, ok
}

func (m Mnemonic) String() string {
	if m < 0 || m >= numMnemonics {
		return "UNKNOWN"
	}
	return commands[m].name
}

// Allows reports whether option letter may follow the mnemonic
func (m Mnemonic) Allows(letter byte) bool {
	return strings.IndexByte(commands[m].options, letter) >= 0
}

///////////////////////////////////////////////////////////////////////////////
/// HANDLERS
///////////////////////////////////////////////////////////////////////////////

func (ip *Interpreter) rapid(ps Params) {
	for _, axis := range []byte("XYZ") {
		if v, ok := ps[axis]; ok {
			ip.position.Set(axis, v)
		}
	}
	logger.Info("Set new position: %s", ip.position)
}

func (ip *Interpreter) linear(ps Params) {
	if z, ok := ps['Z']; ok {
		ip.position.Z = z
	}
	x, hasX := ps['X']
	y, hasY := ps['Y']
	switch {
	case hasX && hasY:
		start := ip.position.Point()
		ip.move(geometry.NewLine(start, geometry.NewPoint(x, y)))
	case hasX:
		// a single axis move relocates the tool but is never drawn
		ip.position.X = x
	case hasY:
		ip.position.Y = y
	}
	logger.Info("Moving tool to position: %s", ip.position)
}

func (ip *Interpreter) arcCW(ps Params) {
	ip.arc(ps, true)
}

func (ip *Interpreter) arcCCW(ps Params) {
	ip.arc(ps, false)
}

// arc relies on X, Y, I and J having been checked by validation. Z is
// accepted but ignored; the cut is judged at the current depth.
func (ip *Interpreter) arc(ps Params, clockwise bool) {
	start := ip.position.Point()
	end := geometry.NewPoint(ps['X'], ps['Y'])
	center := start.Add(ps['I'], ps['J'])
	ip.move(geometry.NewArc(start, end, center, clockwise))

	dir := "counter-clockwise"
	if clockwise {
		dir = "clockwise"
	}
	logger.Info("Moving tool %s around %s to position: %s", dir, center, ip.position)
}

// move hands seg to the assembler when the tool is cutting and always
// advances the tool to the end of seg
func (ip *Interpreter) move(seg geometry.Segment) {
	if ip.spindle && ip.position.Z < 0 {
		ip.shapes.Submit(seg)
	}
	ip.position.X = seg.End.X
	ip.position.Y = seg.End.Y
}

func (ip *Interpreter) home(ps Params) {
	if len(ps) > 0 {
		ip.rapid(ps)
	}
	ip.rapid(Params{'X': 0, 'Y': 0})
}

func (ip *Interpreter) spindleOn(ps Params) {
	ip.spindle = true
	if s, ok := ps['S']; ok {
		logger.Info("Spindle ON, speed: S%d", s)
		return
	}
	logger.Info("Spindle ON, speed: default")
}

func (ip *Interpreter) spindleOff(ps Params) {
	ip.spindle = false
	logger.Info("Spindle OFF")
}

func (ip *Interpreter) end(ps Params) {
	ip.spindle = false
	logger.Info("End of the program")
}

func (ip *Interpreter) noop(ps Params) {}
