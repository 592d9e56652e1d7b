package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/richard-senior/gcode2bmp/internal/config"
	"github.com/richard-senior/gcode2bmp/internal/logger"
	"github.com/richard-senior/gcode2bmp/pkg/canvas"
	"github.com/richard-senior/gcode2bmp/pkg/interpreter"
	"github.com/richard-senior/gcode2bmp/pkg/svg"
	"github.com/richard-senior/gcode2bmp/pkg/transport"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := config.Flags("gcode2bmp")
	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	configFile, _ := flags.GetString("config")
	cfg, err := config.Load(configFile, flags)
	if err != nil {
		logger.Error("Invalid configuration: %v", err)
		return 2
	}
	if err := setupLogging(cfg); err != nil {
		logger.Error("%v", err)
		return 2
	}
	defer logger.Close()

	src := transport.NewStdioSource()
	if input, _ := flags.GetString("input"); input != "" {
		f, err := os.Open(input)
		if err != nil {
			logger.Error("Failed to open input %s: %v", input, err)
			return 1
		}
		defer f.Close()
		src = transport.NewLineSource(f)
		logger.Info("Reading G-code from %s", input)
	}

	ip := interpreter.New(cfg.CanvasWidth, cfg.CanvasHeight)
	if err := transport.Pump(src, ip); err != nil {
		logger.Error("Failed to read input: %v", err)
		return 1
	}
	logger.Info("Read %d lines, interpreted %d", src.Lines(), ip.Line())

	// whatever was drawn before a bad line is still rendered
	if !ip.Draw(cfg.OutputPath) {
		return 1
	}
	if cfg.SVGPath != "" {
		if err := writeSVG(ip, cfg); err != nil {
			logger.Error("%v", err)
			return 1
		}
	}
	if cfg.Verify {
		if err := verify(cfg, len(ip.Shapes())); err != nil {
			logger.Error("%v", err)
			return 1
		}
	}

	if ip.Err() != nil {
		return 1
	}
	return 0
}

func setupLogging(cfg *config.Config) error {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	logger.SetShowDateTime(cfg.ShowDateTime)

	out, err := cfg.LogOutputType()
	if err != nil {
		return err
	}
	logger.DefaultLogFile = cfg.LogFile
	return logger.SetLogOutput(out)
}

func writeSVG(ip *interpreter.Interpreter, cfg *config.Config) error {
	name := strings.TrimSuffix(filepath.Base(cfg.SVGPath), filepath.Ext(cfg.SVGPath))
	doc, err := svg.FromShapes(name, ip.Shapes(), cfg.CanvasWidth, cfg.CanvasHeight)
	if err != nil {
		return fmt.Errorf("failed to build SVG: %w", err)
	}
	return doc.ToSVGFile(cfg.SVGPath)
}

// verify reads the written files back. The bitmap must have the configured
// dimensions and the SVG, when written, one path per shape.
func verify(cfg *config.Config, shapes int) error {
	img, err := canvas.Load(cfg.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to read back %s: %w", cfg.OutputPath, err)
	}
	if img.Width != cfg.CanvasWidth || img.Height != cfg.CanvasHeight {
		return fmt.Errorf("%s is %dx%d, expected %dx%d", cfg.OutputPath, img.Width, img.Height, cfg.CanvasWidth, cfg.CanvasHeight)
	}
	logger.Info("Verified %s: %dx%d", cfg.OutputPath, img.Width, img.Height)

	if cfg.SVGPath == "" || shapes == 0 {
		return nil
	}
	content, err := os.ReadFile(cfg.SVGPath)
	if err != nil {
		return fmt.Errorf("failed to read back %s: %w", cfg.SVGPath, err)
	}
	paths, err := svg.ParsePaths(string(content))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", cfg.SVGPath, err)
	}
	if len(paths) != shapes {
		return fmt.Errorf("%s has %d paths, expected %d", cfg.SVGPath, len(paths), shapes)
	}
	logger.Info("Verified %s: %d paths", cfg.SVGPath, len(paths))
	return nil
}
