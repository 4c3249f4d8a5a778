package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestEncodeSuccessReport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  EncodeRequest
		want string
	}{
		{
			name: "indexed",
			req: EncodeRequest{
				Output:      "out/texture.gvr",
				DataFormat:  DataIndex4,
				PixelFormat: PixelRGB565,
				Header:      HeaderGBIX,
				GlobalIndex: 7,
			},
			want: "success: saved encoded texture to:\n" +
				"  out/texture.gvr\n\n" +
				"info:\n" +
				"  Header: GBIX\n" +
				"  Data format: 4-bit Indexed\n" +
				"  Pixel format: RGB565\n" +
				"  Mipmaps: false\n" +
				"  Global index: 7\n",
		},
		{
			name: "direct",
			req: EncodeRequest{
				Output:      "t.gvr",
				DataFormat:  DataRGB5A3,
				PixelFormat: PixelRGB565,
				Mipmaps:     true,
				Header:      HeaderGCIX,
			},
			want: "success: saved encoded texture to:\n" +
				"  t.gvr\n\n" +
				"info:\n" +
				"  Header: GCIX\n" +
				"  Data format: RGB5A3\n" +
				"  Mipmaps: true\n" +
				"  Global index: 0\n",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			if err := newReporter(true, true).encodeSuccess(&out, tc.req); err != nil {
				t.Fatalf("encodeSuccess: %v", err)
			}
			if out.String() != tc.want {
				t.Fatalf("report mismatch\n got %q\nwant %q", out.String(), tc.want)
			}
		})
	}
}

func TestDecodeSuccessReport(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := newReporter(true, true).decodeSuccess(&out, "image.png"); err != nil {
		t.Fatalf("decodeSuccess: %v", err)
	}
	if want := "success: saved decoded image to:\n  image.png\n"; out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
}

func TestFailureReport(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := newReporter(true, true).failure(&out, failWrite, errors.New("permission denied")); err != nil {
		t.Fatalf("failure: %v", err)
	}
	if want := "error: while writing output file:\n  permission denied\n"; out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
}

func TestUsageErrorReport(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := Validate(DataIndex8, true)
	if werr := newReporter(true, true).usageError(&out, err, encodeUsage, "gvrtex encode"); werr != nil {
		t.Fatalf("usageError: %v", werr)
	}

	got := out.String()
	if !strings.HasPrefix(got, "error: Can't use mipmaps on the `8-bit Indexed` data format.\n\n") {
		t.Fatalf("unexpected first line: %q", got)
	}
	if !strings.Contains(got, "Usage: "+encodeUsage) || !strings.Contains(got, "'gvrtex encode -h'") {
		t.Fatalf("usage hint missing: %q", got)
	}
}

type countingWriter struct {
	writes int
	bytes.Buffer
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes++
	return w.Buffer.Write(p)
}

func TestReportBlocksWrittenOnce(t *testing.T) {
	t.Parallel()

	r := newReporter(true, true)
	w := &countingWriter{}

	_ = r.encodeSuccess(w, EncodeRequest{DataFormat: DataIndex8, PixelFormat: PixelRGB5A3})
	_ = r.decodeSuccess(w, "x.png")
	_ = r.failure(w, failEncode, errors.New("boom"))
	_ = r.usageError(w, errors.New("bad flag"), decodeUsage, "gvrtex decode")

	if w.writes != 4 {
		t.Fatalf("writes = %d, want 4", w.writes)
	}
}
