package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 300, cfg.CanvasWidth)
	assert.Equal(t, "result.bmp", cfg.OutputPath)
}

func TestConfigFile(t *testing.T) {
	path := writeFile(t, "gcode2bmp.yaml", "width: 640\nheight: 480\noutput: out.bmp\nlog-level: debug\nverify: true\n")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.CanvasWidth)
	assert.Equal(t, 480, cfg.CanvasHeight)
	assert.Equal(t, "out.bmp", cfg.OutputPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Verify)
}

func TestMissingExplicitConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestPrecedence(t *testing.T) {
	path := writeFile(t, "gcode2bmp.yaml", "width: 640\nheight: 480\noutput: file.bmp\n")
	t.Setenv("GCODE2BMP_HEIGHT", "200")
	t.Setenv("GCODE2BMP_LOG_LEVEL", "WARN")

	fs := Flags("test")
	require.NoError(t, fs.Parse([]string{"--output", "flag.bmp"}))

	cfg, err := Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.CanvasWidth, "file beats default")
	assert.Equal(t, 200, cfg.CanvasHeight, "env beats file")
	assert.Equal(t, "WARN", cfg.LogLevel)
	assert.Equal(t, "flag.bmp", cfg.OutputPath, "flag beats file")
}

func TestUnsetFlagsDoNotOverride(t *testing.T) {
	path := writeFile(t, "gcode2bmp.yaml", "width: 50\n")
	fs := Flags("test")
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.CanvasWidth)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.CanvasWidth = 0 }},
		{"negative height", func(c *Config) { c.CanvasHeight = -1 }},
		{"empty output", func(c *Config) { c.OutputPath = " " }},
		{"bad level", func(c *Config) { c.LogLevel = "LOUD" }},
		{"bad output", func(c *Config) { c.LogOutput = "syslog" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := DefaultConfig()
			tc.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
	assert.NoError(t, DefaultConfig().Validate())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("GCODE2BMP_WIDTH", "0")
	_, err := Load("", nil)
	assert.Error(t, err)
}

func TestLogOutputType(t *testing.T) {
	for in, want := range map[string]rune{"console": 'c', "FILE": 'f', "both": 'b', "": 'c'} {
		c := &Config{LogOutput: in}
		got, err := c.LogOutputType()
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
}

func TestConfigFoundInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gcode2bmp.yaml"), []byte("width: 77\n"), 0644))
	chdir(t, dir)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 77, cfg.CanvasWidth)
}

func TestConfigFoundBesideExecutable(t *testing.T) {
	dir, err := ConfigDir()
	require.NoError(t, err)
	exeDir, err := GetExecutableDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(exeDir, "configs"), dir)

	if _, err := os.Stat(dir); err == nil {
		t.Skip("configs directory already exists beside the test binary")
	}
	require.NoError(t, os.MkdirAll(dir, 0755))
	t.Cleanup(func() { os.RemoveAll(dir) })
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gcode2bmp.yaml"), []byte("height: 88\n"), 0644))

	chdir(t, t.TempDir())
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 88, cfg.CanvasHeight)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
}
