// Package cli implements the gvrtex command line: option catalog, validation,
// encoder configuration and outcome reporting around the gvr codec.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/InfinityTools/go-logging"
	"github.com/mattn/go-isatty"
	"github.com/woozymasta/gvr"
)

// Version is reported by --version; override with -ldflags "-X".
var Version = "dev"

const programName = "gvrtex"

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

const rootHelp = `Encodes and decodes images in the GVR texture format

Usage: gvrtex [-v] <command> [args]

Commands:
  encode  Encodes the given image file into an appropriate GVR texture file.
  decode  Decodes the given GVR texture file into an image file.
  help    Print this message or the help of the given command.

Options:
  -v, --verbose  Log processing stages to stderr.
  -h, --help     Print help.
  -V, --version  Print version.
`

const (
	encodeUsage = "gvrtex encode [flags] <input> <output>"
	decodeUsage = "gvrtex decode <input> <output>"
)

const decodeHelp = `Decodes the given GVR texture file into an image file.

Usage: ` + decodeUsage + `

Arguments:
  <input>   Input GVR texture file to operate on.
  <output>  Path to where to save the output image file to. The file extension
            selects the image format (png, gif, bmp, tif); only formats that
            support transparency keep the alpha channel.
`

func encodeHelp() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Encodes the given image file into an appropriate GVR texture file.\n\n")
	fmt.Fprintf(&b, "Usage: %s\n\n", encodeUsage)
	fmt.Fprintf(&b, "Arguments:\n")
	fmt.Fprintf(&b, "  <input>   Input image file (png, jpg, gif, bmp, tif, webp).\n")
	fmt.Fprintf(&b, "  <output>  Path to where to save the encoded GVR file to.\n\n")
	fmt.Fprintf(&b, "Options:\n")
	fmt.Fprintf(&b, "  -d, --data-format <FORMAT>   The format the image data should be encoded in.\n")
	fmt.Fprintf(&b, "                               [default: %s] [possible values: %s]\n",
		DataDXT1.Name(), joinNames(DataFormats()))
	fmt.Fprintf(&b, "  -p, --pixel-format <FORMAT>  Palette color format for index4 and index8; ignored otherwise.\n")
	fmt.Fprintf(&b, "                               [default: %s] [possible values: %s]\n",
		PixelRGB5A3.Name(), joinNames(PixelFormats()))
	fmt.Fprintf(&b, "  -m, --mipmaps                Encode with mipmaps. Only supported on dxt1, rgb565 and rgb5a3.\n")
	fmt.Fprintf(&b, "  -i, --header <HEADER>        The magic string of the header.\n")
	fmt.Fprintf(&b, "                               [default: %s] [possible values: %s]\n",
		HeaderGCIX.Name(), newChoice(new(HeaderID), headerIDs[:]).names())
	fmt.Fprintf(&b, "  -g, --global-index <N>       The global index stored in the header. [default: 0]\n")
	fmt.Fprintf(&b, "  -h, --help                   Print help.\n")
	return b.String()
}

type app struct {
	stdout  io.Writer
	stderr  io.Writer
	report  *reporter
	verbose bool
}

// Run executes one gvrtex invocation and returns the process exit status.
func Run(args []string, stdout, stderr io.Writer) int {
	return run(args, stdout, stderr, noColorFor(stdout), noColorFor(stderr))
}

// noColorFor reports whether output to w must stay free of escape codes.
func noColorFor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return true
	}
	return !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
}

func run(args []string, stdout, stderr io.Writer, noColorOut, noColorErr bool) int {
	a := &app{
		stdout: stdout,
		stderr: stderr,
		report: newReporter(noColorOut, noColorErr),
	}

	fs := newFlagSet(programName)
	var version, verbose bool
	fs.BoolVar(&version, "version", false, "print version")
	fs.BoolVar(&version, "V", false, "print version")
	fs.BoolVar(&verbose, "verbose", false, "log processing stages")
	fs.BoolVar(&verbose, "v", false, "log processing stages")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			_, _ = io.WriteString(stdout, rootHelp)
			return exitOK
		}
		return a.usage(err, "gvrtex [-v] <command> [args]", programName)
	}
	if version {
		fmt.Fprintf(stdout, "%s %s\n", programName, Version)
		return exitOK
	}
	if verbose {
		a.verbose = true
		logging.SetVerbosity(logging.LOG)
		logging.SetPrefixCaller(false)
		logging.SetPrefixTimestamp(true)
		logging.SetPrefixLevel(true)
	}

	rest := fs.Args()
	if len(rest) == 0 {
		_, _ = io.WriteString(stderr, rootHelp)
		return exitUsage
	}

	switch rest[0] {
	case "encode":
		return a.encode(rest[1:])
	case "decode":
		return a.decode(rest[1:])
	case "help":
		return a.help(rest[1:])
	default:
		return a.usage(fmt.Errorf("unrecognized subcommand '%s'", rest[0]), "gvrtex [-v] <command> [args]", programName)
	}
}

func (a *app) help(args []string) int {
	if len(args) == 0 {
		_, _ = io.WriteString(a.stdout, rootHelp)
		return exitOK
	}

	switch args[0] {
	case "encode":
		_, _ = io.WriteString(a.stdout, encodeHelp())
	case "decode":
		_, _ = io.WriteString(a.stdout, decodeHelp)
	default:
		return a.usage(fmt.Errorf("unrecognized subcommand '%s'", args[0]), "gvrtex help [command]", programName)
	}
	return exitOK
}

func (a *app) usage(err error, usage, command string) int {
	_ = a.report.usageError(a.stderr, err, usage, command)
	return exitUsage
}

func (a *app) encode(args []string) int {
	const command = programName + " encode"

	dataFormat := DataDXT1
	pixelFormat := PixelRGB5A3
	header := HeaderGCIX
	var mipmaps bool
	var globalIndex uint32Value

	fs := newFlagSet(command)
	dataFlag := newChoice(&dataFormat, dataFormats[:])
	pixelFlag := newChoice(&pixelFormat, pixelFormats[:])
	headerFlag := newChoice(&header, headerIDs[:])
	for _, name := range []string{"data-format", "d"} {
		fs.Var(dataFlag, name, "texture data format")
	}
	for _, name := range []string{"pixel-format", "p"} {
		fs.Var(pixelFlag, name, "palette pixel format")
	}
	for _, name := range []string{"mipmaps", "m"} {
		fs.BoolVar(&mipmaps, name, false, "encode mipmaps")
	}
	for _, name := range []string{"header", "i"} {
		fs.Var(headerFlag, name, "header magic")
	}
	for _, name := range []string{"global-index", "g"} {
		fs.Var(&globalIndex, name, "global index")
	}

	positional, err := parseArgs(fs, args)
	if errors.Is(err, flag.ErrHelp) {
		_, _ = io.WriteString(a.stdout, encodeHelp())
		return exitOK
	}
	if err != nil {
		return a.usage(err, encodeUsage, command)
	}
	if len(positional) != 2 {
		return a.usage(fmt.Errorf("expected <input> and <output>, got %d argument(s)", len(positional)), encodeUsage, command)
	}

	req, err := NewEncodeRequest(positional[0], positional[1], dataFormat, pixelFormat, mipmaps, header, uint32(globalIndex))
	if err != nil {
		return a.usage(err, encodeUsage, command)
	}

	a.infof("Encoding %q with %s (%s header, mipmaps=%t, global index %d)\n",
		req.Input, req.DataFormat, selectPath(req.Palettized(), req.Header), req.Mipmaps, req.GlobalIndex)

	enc, err := Configure(req)
	if err != nil {
		_ = a.report.failure(a.stderr, failInitialize, err)
		return exitFailure
	}

	data, err := enc.Encode(req.Input)
	if err != nil {
		_ = a.report.failure(a.stderr, failEncode, err)
		return exitFailure
	}
	a.infof("Encoded %d bytes\n", len(data))

	if err := os.WriteFile(req.Output, data, 0o644); err != nil {
		_ = a.report.failure(a.stderr, failWrite, err)
		return exitFailure
	}

	_ = a.report.encodeSuccess(a.stdout, req)
	return exitOK
}

func (a *app) decode(args []string) int {
	const command = programName + " decode"

	fs := newFlagSet(command)
	positional, err := parseArgs(fs, args)
	if errors.Is(err, flag.ErrHelp) {
		_, _ = io.WriteString(a.stdout, decodeHelp)
		return exitOK
	}
	if err != nil {
		return a.usage(err, decodeUsage, command)
	}
	if len(positional) != 2 {
		return a.usage(fmt.Errorf("expected <input> and <output>, got %d argument(s)", len(positional)), decodeUsage, command)
	}
	input, output := positional[0], positional[1]

	dec, err := gvr.NewDecoder(input)
	if err != nil {
		_ = a.report.failure(a.stderr, failOpen, err)
		return exitFailure
	}

	if err := dec.Decode(); err != nil {
		_ = a.report.failure(a.stderr, failDecode, err)
		return exitFailure
	}
	if h := dec.Header(); h != nil {
		a.infof("Decoded %q: %s %dx%d, header %q, global index %d\n",
			input, h.DataFormat, h.Width, h.Height, h.ID, h.GlobalIndex)
	}

	if err := dec.Save(output); err != nil {
		_ = a.report.failure(a.stderr, failSave, err)
		return exitFailure
	}

	_ = a.report.decodeSuccess(a.stdout, output)
	return exitOK
}

// infof logs a processing stage when --verbose is set.
func (a *app) infof(format string, args ...any) {
	if a.verbose {
		logging.Infof(format, args...)
	}
}

// newFlagSet returns a silent flag set; parse errors are reported by the caller.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}

// parseArgs parses flags interleaved with positional arguments.
// Everything after a "--" terminator is positional.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}

		rest := fs.Args()
		consumed := len(args) - len(rest)
		if consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}
		if len(rest) == 0 {
			return positional, nil
		}

		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// uint32Value is a flag.Value for unsigned 32-bit integers.
type uint32Value uint32

func (v *uint32Value) String() string {
	if v == nil {
		return "0"
	}
	return strconv.FormatUint(uint64(*v), 10)
}

func (v *uint32Value) Set(s string) error {
	n, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return fmt.Errorf("invalid value %q, expected an integer in 0..%d", s, ^uint32(0))
	}
	*v = uint32Value(n)
	return nil
}
