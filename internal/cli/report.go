package cli

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// failureCategory names the stage that failed.
type failureCategory string

const (
	failInitialize failureCategory = "while initializing"
	failEncode     failureCategory = "while encoding texture"
	failWrite      failureCategory = "while writing output file"
	failOpen       failureCategory = "while opening input file"
	failDecode     failureCategory = "while decoding input file"
	failSave       failureCategory = "while saving output image"
)

// reporter renders complete outcome blocks; each block is written with a single Write.
// Success and info labels go to stdout, error labels to stderr.
type reporter struct {
	errorLabel   *color.Color
	successLabel *color.Color
	infoLabel    *color.Color
}

func newReporter(noColorOut, noColorErr bool) *reporter {
	return &reporter{
		errorLabel:   label(noColorErr, color.FgHiRed, color.Bold),
		successLabel: label(noColorOut, color.FgHiGreen, color.Bold),
		infoLabel:    label(noColorOut, color.FgHiCyan, color.Bold),
	}
}

func label(noColor bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if noColor {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c
}

func (r *reporter) encodeSuccess(w io.Writer, req EncodeRequest) error {
	var b bytes.Buffer
	r.successLabel.Fprint(&b, "success:")
	fmt.Fprintln(&b, " saved encoded texture to:")
	fmt.Fprintf(&b, "  %s\n\n", req.Output)

	r.infoLabel.Fprint(&b, "info:")
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "  Header: %s\n", req.Header)
	fmt.Fprintf(&b, "  Data format: %s\n", req.DataFormat)
	if req.Palettized() {
		fmt.Fprintf(&b, "  Pixel format: %s\n", req.PixelFormat)
	}
	fmt.Fprintf(&b, "  Mipmaps: %t\n", req.Mipmaps)
	fmt.Fprintf(&b, "  Global index: %d\n", req.GlobalIndex)

	_, err := w.Write(b.Bytes())
	return err
}

func (r *reporter) decodeSuccess(w io.Writer, output string) error {
	var b bytes.Buffer
	r.successLabel.Fprint(&b, "success:")
	fmt.Fprintln(&b, " saved decoded image to:")
	fmt.Fprintf(&b, "  %s\n", output)

	_, err := w.Write(b.Bytes())
	return err
}

func (r *reporter) failure(w io.Writer, category failureCategory, err error) error {
	var b bytes.Buffer
	r.errorLabel.Fprint(&b, "error:")
	fmt.Fprintf(&b, " %s:\n", category)
	fmt.Fprintf(&b, "  %v\n", err)

	_, werr := w.Write(b.Bytes())
	return werr
}

// usageError reports a rejected command line, followed by the usage line of the command.
func (r *reporter) usageError(w io.Writer, err error, usage, command string) error {
	var b bytes.Buffer
	r.errorLabel.Fprint(&b, "error:")
	fmt.Fprintf(&b, " %v\n\n", err)
	fmt.Fprintf(&b, "Usage: %s\n\n", usage)
	fmt.Fprintf(&b, "For more information, try '%s -h'.\n", command)

	_, werr := w.Write(b.Bytes())
	return werr
}
