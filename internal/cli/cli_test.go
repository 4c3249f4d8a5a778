package cli

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/InfinityTools/go-logging"
)

// writePNG stores a small opaque gradient and returns its path.
func writePNG(t *testing.T, dir string, size int) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / size), //nolint:gosec // bounded by size
				G: uint8(y * 255 / size), //nolint:gosec // bounded by size
				B: 0x80,
				A: 0xff,
			})
		}
	}

	path := filepath.Join(dir, "input.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer func() { _ = f.Close() }()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return path
}

// runCLI invokes the command line with colors disabled.
func runCLI(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut, true, true)
	return code, out.String(), errOut.String()
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writePNG(t, dir, 16)
	texture := filepath.Join(dir, "texture.gvr")
	decoded := filepath.Join(dir, "decoded.png")

	code, stdout, stderr := runCLI("encode", input, texture, "-m", "-g", "12")
	if code != exitOK {
		t.Fatalf("encode exit %d, stderr %q", code, stderr)
	}
	if !strings.Contains(stdout, "Data format: DXT1 Compressed") || !strings.Contains(stdout, "Global index: 12") {
		t.Fatalf("unexpected summary: %q", stdout)
	}
	if strings.Contains(stdout, "Pixel format") {
		t.Fatalf("pixel format reported for direct format: %q", stdout)
	}

	data, err := os.ReadFile(texture)
	if err != nil {
		t.Fatalf("read texture: %v", err)
	}
	if string(data[:4]) != "GCIX" || string(data[16:20]) != "GVRT" {
		t.Fatalf("unexpected magic % x", data[:20])
	}

	code, stdout, stderr = runCLI("decode", texture, decoded)
	if code != exitOK {
		t.Fatalf("decode exit %d, stderr %q", code, stderr)
	}
	if want := "success: saved decoded image to:\n  " + decoded + "\n"; stdout != want {
		t.Fatalf("decode summary %q, want %q", stdout, want)
	}

	f, err := os.Open(decoded)
	if err != nil {
		t.Fatalf("open decoded: %v", err)
	}
	defer func() { _ = f.Close() }()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode png config: %v", err)
	}
	if cfg.Width != 16 || cfg.Height != 16 {
		t.Fatalf("decoded size %dx%d", cfg.Width, cfg.Height)
	}
}

func TestEncodeIndexedWithGBIX(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writePNG(t, dir, 8)
	texture := filepath.Join(dir, "indexed.gvr")

	code, stdout, stderr := runCLI("encode", "--data-format", "index4", "-p", "rgb565", "-i", "gbix", input, texture)
	if code != exitOK {
		t.Fatalf("exit %d, stderr %q", code, stderr)
	}
	for _, want := range []string{"Header: GBIX", "Data format: 4-bit Indexed", "Pixel format: RGB565", "Mipmaps: false"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("summary missing %q: %q", want, stdout)
		}
	}

	data, err := os.ReadFile(texture)
	if err != nil {
		t.Fatalf("read texture: %v", err)
	}
	if string(data[:4]) != "GBIX" {
		t.Fatalf("magic = %q", data[:4])
	}
	// pixel format nibble RGB565 (1), internal palette flag, index4 data format
	if data[0x1A] != 0x18 || data[0x1B] != 0x08 {
		t.Fatalf("format bytes = % x", data[0x1A:0x1C])
	}
}

func TestEncodeRejectsMipmapsOnIndexed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writePNG(t, dir, 8)
	texture := filepath.Join(dir, "never.gvr")

	code, stdout, stderr := runCLI("encode", "-d", "index8", "-m", input, texture)
	if code != exitUsage {
		t.Fatalf("exit %d, want %d", code, exitUsage)
	}
	if stdout != "" {
		t.Fatalf("unexpected stdout %q", stdout)
	}
	if !strings.Contains(stderr, "Can't use mipmaps on the `8-bit Indexed` data format.") {
		t.Fatalf("stderr %q", stderr)
	}
	if _, err := os.Stat(texture); !os.IsNotExist(err) {
		t.Fatalf("output file created despite validation failure: %v", err)
	}
}

func TestEncodeFailures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writePNG(t, dir, 8)

	tests := []struct {
		name string
		args []string
		code int
		want string
	}{
		{
			name: "missing-input",
			args: []string{"encode", filepath.Join(dir, "missing.png"), filepath.Join(dir, "a.gvr")},
			code: exitFailure,
			want: "error: while encoding texture:\n",
		},
		{
			name: "unwritable-output",
			args: []string{"encode", input, filepath.Join(dir, "no", "such", "dir", "a.gvr")},
			code: exitFailure,
			want: "error: while writing output file:\n",
		},
		{
			name: "unknown-format",
			args: []string{"encode", "-d", "bc7", input, filepath.Join(dir, "b.gvr")},
			code: exitUsage,
			want: "Usage: " + encodeUsage,
		},
		{
			name: "bad-global-index",
			args: []string{"encode", "-g", "-1", input, filepath.Join(dir, "c.gvr")},
			code: exitUsage,
			want: "error:",
		},
		{
			name: "missing-output",
			args: []string{"encode", input},
			code: exitUsage,
			want: "expected <input> and <output>",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			code, stdout, stderr := runCLI(tc.args...)
			if code != tc.code {
				t.Fatalf("exit %d, want %d (stderr %q)", code, tc.code, stderr)
			}
			if stdout != "" {
				t.Fatalf("unexpected stdout %q", stdout)
			}
			if !strings.Contains(stderr, tc.want) {
				t.Fatalf("stderr %q does not contain %q", stderr, tc.want)
			}
		})
	}
}

func TestDecodeFailures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.gvr")
	if err := os.WriteFile(garbage, []byte("not a texture at all, definitely not"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	input := writePNG(t, dir, 8)
	texture := filepath.Join(dir, "ok.gvr")
	if code, _, stderr := runCLI("encode", "-d", "rgb565", input, texture); code != exitOK {
		t.Fatalf("prepare texture: %q", stderr)
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing", []string{"decode", filepath.Join(dir, "missing.gvr"), filepath.Join(dir, "a.png")}, "error: while opening input file:\n"},
		{"garbage", []string{"decode", garbage, filepath.Join(dir, "b.png")}, "error: while decoding input file:\n"},
		{"unsupported-output", []string{"decode", texture, filepath.Join(dir, "c.unknown")}, "error: while saving output image:\n"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			code, _, stderr := runCLI(tc.args...)
			if code != exitFailure {
				t.Fatalf("exit %d, want %d", code, exitFailure)
			}
			if !strings.HasPrefix(stderr, tc.want) {
				t.Fatalf("stderr %q does not start with %q", stderr, tc.want)
			}
		})
	}
}

func TestRootCommands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		code       int
		wantStdout string
		wantStderr string
	}{
		{name: "version", args: []string{"--version"}, code: exitOK, wantStdout: "gvrtex dev\n"},
		{name: "version-short", args: []string{"-V"}, code: exitOK, wantStdout: "gvrtex dev\n"},
		{name: "help", args: []string{"help"}, code: exitOK, wantStdout: "Commands:"},
		{name: "help-flag", args: []string{"-h"}, code: exitOK, wantStdout: "Usage: gvrtex"},
		{name: "help-encode", args: []string{"help", "encode"}, code: exitOK, wantStdout: "4-bit Indexed"},
		{name: "encode-h", args: []string{"encode", "-h"}, code: exitOK, wantStdout: "--pixel-format"},
		{name: "decode-h", args: []string{"decode", "--help"}, code: exitOK, wantStdout: "Usage: " + decodeUsage},
		{name: "no-command", args: nil, code: exitUsage, wantStderr: "Commands:"},
		{name: "unknown-command", args: []string{"convert"}, code: exitUsage, wantStderr: "unrecognized subcommand 'convert'"},
		{name: "unknown-flag", args: []string{"--fast"}, code: exitUsage, wantStderr: "error:"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			code, stdout, stderr := runCLI(tc.args...)
			if code != tc.code {
				t.Fatalf("exit %d, want %d", code, tc.code)
			}
			if !strings.Contains(stdout, tc.wantStdout) {
				t.Fatalf("stdout %q does not contain %q", stdout, tc.wantStdout)
			}
			if !strings.Contains(stderr, tc.wantStderr) {
				t.Fatalf("stderr %q does not contain %q", stderr, tc.wantStderr)
			}
		})
	}
}

// Not parallel: the logger verbosity is process wide.
func TestVerboseRaisesLogVerbosity(t *testing.T) {
	prev := logging.GetVerbosity()
	t.Cleanup(func() { logging.SetVerbosity(prev) })
	logging.SetVerbosity(logging.ERROR)

	dir := t.TempDir()
	input := writePNG(t, dir, 8)

	code, stdout, stderr := runCLI("encode", "-d", "rgb5a3", input, filepath.Join(dir, "quiet.gvr"))
	if code != exitOK {
		t.Fatalf("exit %d, stderr %q", code, stderr)
	}
	if logging.GetVerbosity() != logging.ERROR {
		t.Fatalf("verbosity changed without --verbose")
	}

	code, stdout, stderr = runCLI("-v", "encode", "-d", "rgb5a3", input, filepath.Join(dir, "v.gvr"))
	if code != exitOK {
		t.Fatalf("exit %d, stderr %q", code, stderr)
	}
	if logging.GetVerbosity() >= logging.INFO {
		t.Fatalf("--verbose did not enable info logging")
	}
	if !strings.HasPrefix(stdout, "success: saved encoded texture to:") || stderr != "" {
		t.Fatalf("verbose run changed the report: stdout %q stderr %q", stdout, stderr)
	}
}

func TestNoColorFor(t *testing.T) {
	t.Parallel()

	if !noColorFor(&bytes.Buffer{}) {
		t.Fatalf("non-file writer must not get color")
	}

	f, err := os.Create(filepath.Join(t.TempDir(), "stderr.log"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer func() { _ = f.Close() }()
	if !noColorFor(f) {
		t.Fatalf("regular file must not get color")
	}
}

func TestColorDecidedPerStream(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var out, errOut bytes.Buffer

	// Colored stdout, plain stderr.
	code := run([]string{"encode", filepath.Join(dir, "missing.png"), filepath.Join(dir, "a.gvr")}, &out, &errOut, false, true)
	if code != exitFailure {
		t.Fatalf("exit %d", code)
	}
	if strings.Contains(errOut.String(), "\x1b[") {
		t.Fatalf("escape codes in stderr: %q", errOut.String())
	}

	out.Reset()
	code = run([]string{"encode", "-d", "rgb565", writePNG(t, dir, 8), filepath.Join(dir, "b.gvr")}, &out, &errOut, false, true)
	if code != exitOK {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(out.String(), "\x1b[") {
		t.Fatalf("expected colored stdout: %q", out.String())
	}
}

func TestEncodeHelpListsFormats(t *testing.T) {
	t.Parallel()

	help := encodeHelp()
	for _, want := range []string{
		"[possible values: intensity4, intensity8, intensity-a4, intensity-a8, rgb565, rgb5a3, argb8888, index4, index8, dxt1]",
		"[possible values: intensity-a8, rgb565, rgb5a3]",
		"[possible values: gcix, gbix]",
	} {
		if !strings.Contains(help, want) {
			t.Fatalf("help missing %q:\n%s", want, help)
		}
	}
}

func TestParseArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    []string
		mipmaps bool
	}{
		{"flags-first", []string{"-m", "a", "b"}, []string{"a", "b"}, true},
		{"flags-last", []string{"a", "b", "--mipmaps"}, []string{"a", "b"}, true},
		{"interleaved", []string{"a", "-m", "b"}, []string{"a", "b"}, true},
		{"terminator", []string{"a", "--", "-m"}, []string{"a", "-m"}, false},
	}

	for _, tc := range tests {
		fs := newFlagSet("test")
		var mipmaps bool
		fs.BoolVar(&mipmaps, "mipmaps", false, "")
		fs.BoolVar(&mipmaps, "m", false, "")

		got, err := parseArgs(fs, tc.args)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if strings.Join(got, "|") != strings.Join(tc.want, "|") || mipmaps != tc.mipmaps {
			t.Fatalf("%s: got %q mipmaps=%t, want %q mipmaps=%t", tc.name, got, mipmaps, tc.want, tc.mipmaps)
		}
	}
}
