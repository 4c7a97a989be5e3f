package io

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/polymer/pkg/chain"
	"github.com/matzehuels/polymer/pkg/errors"
)

func TestFormatXYZExample(t *testing.T) {
	pts := []chain.Point{
		{Label: "C", X: 0, Y: 0, Z: 0},
		{Label: "C", X: 1, Y: 0, Z: 1},
	}
	got, err := FormatXYZ(2, pts)
	if err != nil {
		t.Fatalf("FormatXYZ error: %v", err)
	}
	want := "2\nGenerated polymer chain\nC 0.000000 0.000000 0.000000\nC 1.000000 0.000000 1.000000\n"
	if got != want {
		t.Errorf("FormatXYZ mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestFormatXYZOptions(t *testing.T) {
	pts := []chain.Point{{Label: "Si", X: 1.23456, Y: -2, Z: 3}}
	got, err := FormatXYZ(1, pts, WithComment("custom"), WithPrecision(2))
	if err != nil {
		t.Fatal(err)
	}
	want := "1\ncustom\nSi 1.23 -2.00 3.00\n"
	if got != want {
		t.Errorf("FormatXYZ = %q, want %q", got, want)
	}
}

func TestFormatXYZEmpty(t *testing.T) {
	got, err := FormatXYZ(0, nil, WithComment(""))
	if err != nil {
		t.Fatal(err)
	}
	if got != "0\n\n" {
		t.Errorf("FormatXYZ(0) = %q", got)
	}
}

func TestFormatXYZHeaderMatchesRecords(t *testing.T) {
	for _, n := range []int{1, 4, 33} {
		c, err := chain.Generate(n, 109.5, 2, chain.WithSeed(uint64(n)))
		if err != nil {
			t.Fatal(err)
		}
		text, err := FormatXYZ(len(c), c)
		if err != nil {
			t.Fatal(err)
		}
		lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
		declared, err := strconv.Atoi(lines[0])
		if err != nil {
			t.Fatalf("first line %q is not an integer", lines[0])
		}
		if declared != n {
			t.Errorf("declared count = %d, want %d", declared, n)
		}
		if records := len(lines) - 2; records != n {
			t.Errorf("record lines = %d, want %d", records, n)
		}
	}
}

func TestFormatXYZErrors(t *testing.T) {
	good := []chain.Point{{Label: "C"}}
	tests := []struct {
		name  string
		count int
		pts   []chain.Point
		opts  []XYZOption
		code  errors.Code
	}{
		{"count too high", 2, good, nil, errors.ErrCodeInvalidArgument},
		{"count too low", 0, good, nil, errors.ErrCodeInvalidArgument},
		{"multi-line comment", 1, good, []XYZOption{WithComment("a\nb")}, errors.ErrCodeInvalidArgument},
		{"bad precision", 1, good, []XYZOption{WithPrecision(-1)}, errors.ErrCodeInvalidArgument},
		{"empty label", 1, []chain.Point{{}}, nil, errors.ErrCodeInvalidArgument},
		{"nan coordinate", 1, []chain.Point{{Label: "C", X: math.NaN()}}, nil, errors.ErrCodeNumericDomain},
		{"inf coordinate", 1, []chain.Point{{Label: "C", Z: math.Inf(-1)}}, nil, errors.ErrCodeNumericDomain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := WriteXYZ(&buf, tt.count, tt.pts, tt.opts...)
			if !errors.Is(err, tt.code) {
				t.Errorf("WriteXYZ error = %v, want code %s", err, tt.code)
			}
			if buf.Len() != 0 {
				t.Errorf("WriteXYZ wrote %d bytes before failing", buf.Len())
			}
		})
	}
}

func TestXYZRoundTrip(t *testing.T) {
	c, err := chain.Generate(60, 120, 7.5, chain.WithSeed(2024))
	if err != nil {
		t.Fatal(err)
	}
	text, err := FormatXYZ(len(c), c, WithComment("round trip"))
	if err != nil {
		t.Fatal(err)
	}

	frame, err := ParseXYZ(text)
	if err != nil {
		t.Fatalf("ParseXYZ error: %v", err)
	}
	if frame.Comment != "round trip" {
		t.Errorf("comment = %q", frame.Comment)
	}
	if diff := cmp.Diff(c, frame.Points, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseXYZTolerant(t *testing.T) {
	input := "2\r\n  spaced comment  \r\nC   1.5\t2 3 extra\r\n\nO -1 -2 -3\n\n\n"
	frame, err := ParseXYZ(input)
	if err != nil {
		t.Fatalf("ParseXYZ error: %v", err)
	}
	want := chain.Chain{
		{Label: "C", X: 1.5, Y: 2, Z: 3},
		{Label: "O", X: -1, Y: -2, Z: -3},
	}
	if diff := cmp.Diff(want, frame.Points); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
	if frame.Comment != "  spaced comment  " {
		t.Errorf("comment = %q", frame.Comment)
	}
}

func TestParseXYZErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"bad count", "two\ncomment\n"},
		{"negative count", "-1\ncomment\n"},
		{"missing comment", "1\n"},
		{"too few records", "2\nc\nC 0 0 0\n"},
		{"too many records", "1\nc\nC 0 0 0\nC 1 1 1\n"},
		{"short record", "1\nc\nC 0 0\n"},
		{"bad coordinate", "1\nc\nC 0 x 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseXYZ(tt.input)
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("ParseXYZ(%q) error = %v, want INVALID_FORMAT", tt.input, err)
			}
		})
	}
}

func TestExportImportXYZ(t *testing.T) {
	c, err := chain.Generate(5, 120, 0)
	if err != nil {
		t.Fatal(err)
	}
	path := t.TempDir() + "/polymer.xyz"
	if err := ExportXYZ(path, c); err != nil {
		t.Fatalf("ExportXYZ error: %v", err)
	}
	frame, err := ImportXYZ(path)
	if err != nil {
		t.Fatalf("ImportXYZ error: %v", err)
	}
	if diff := cmp.Diff(c, frame.Points, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Errorf("import mismatch (-want +got):\n%s", diff)
	}

	if _, err := ImportXYZ(t.TempDir() + "/missing.xyz"); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportXYZ missing file error = %v, want FILE_NOT_FOUND", err)
	}
}
