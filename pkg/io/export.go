package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/polymer/pkg/chain"
	"github.com/matzehuels/polymer/pkg/errors"
)

// DefaultComment is written on the second line when no comment is given.
const DefaultComment = "Generated polymer chain"

// DefaultPrecision is the number of decimals written per coordinate.
const DefaultPrecision = 6

// XYZOption configures XYZ output.
type XYZOption func(*xyzWriter)

type xyzWriter struct {
	comment   string
	precision int
}

// WithComment sets the comment line.
func WithComment(c string) XYZOption { return func(w *xyzWriter) { w.comment = c } }

// WithPrecision sets the number of decimals per coordinate.
func WithPrecision(p int) XYZOption { return func(w *xyzWriter) { w.precision = p } }

// FormatXYZ renders points as an XYZ string. count must equal len(points).
func FormatXYZ(count int, points []chain.Point, opts ...XYZOption) (string, error) {
	var buf bytes.Buffer
	if err := WriteXYZ(&buf, count, points, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteXYZ writes points to w in XYZ format. Inputs are validated before
// anything is written.
func WriteXYZ(w io.Writer, count int, points []chain.Point, opts ...XYZOption) error {
	x := xyzWriter{comment: DefaultComment, precision: DefaultPrecision}
	for _, opt := range opts {
		opt(&x)
	}
	if err := x.validate(count, points); err != nil {
		return err
	}

	buf := make([]byte, 0, 32*(len(points)+2))
	buf = strconv.AppendInt(buf, int64(count), 10)
	buf = append(buf, '\n')
	buf = append(buf, x.comment...)
	buf = append(buf, '\n')
	for _, p := range points {
		buf = append(buf, p.Label...)
		for _, v := range [3]float64{p.X, p.Y, p.Z} {
			buf = append(buf, ' ')
			buf = strconv.AppendFloat(buf, v, 'f', x.precision, 64)
		}
		buf = append(buf, '\n')
	}

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write xyz: %w", err)
	}
	return nil
}

func (x *xyzWriter) validate(count int, points []chain.Point) error {
	if count != len(points) {
		return errors.New(errors.ErrCodeInvalidArgument, "point count %d does not match %d points", count, len(points))
	}
	if x.precision < 0 || x.precision > 17 {
		return errors.New(errors.ErrCodeInvalidArgument, "precision must be between 0 and 17, got %d", x.precision)
	}
	if err := errors.ValidateComment(x.comment); err != nil {
		return err
	}
	for i, p := range points {
		if err := errors.ValidateLabel(p.Label); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidArgument, err, "point %d", i)
		}
		for _, v := range [3]float64{p.X, p.Y, p.Z} {
			if err := errors.ValidateFinite("coordinate", v); err != nil {
				return errors.Wrap(errors.ErrCodeNumericDomain, err, "point %d", i)
			}
		}
	}
	return nil
}

// ExportXYZ writes points to an XYZ file at path.
// This is a convenience wrapper around [WriteXYZ] for file-based output.
func ExportXYZ(path string, points []chain.Point, opts ...XYZOption) error {
	text, err := FormatXYZ(len(points), points, opts...)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Document is the structured export of a single chain.
type Document struct {
	Count   int           `json:"count" yaml:"count"`
	Comment string        `json:"comment,omitempty" yaml:"comment,omitempty"`
	Params  *chain.Params `json:"params,omitempty" yaml:"params,omitempty"`
	Points  chain.Chain   `json:"points" yaml:"points"`
}

// NewDocument builds a Document for c. params may be nil for chains that
// were not generated in this process (e.g. imported from XYZ).
func NewDocument(c chain.Chain, comment string, params *chain.Params) Document {
	return Document{Count: len(c), Comment: comment, Params: params, Points: c}
}

// WriteJSON encodes d as indented JSON.
func WriteJSON(w io.Writer, d Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes d as YAML.
func WriteYAML(w io.Writer, d Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// WriteMsgpack encodes d as MessagePack using the JSON field names.
func WriteMsgpack(w io.Writer, d Document) error {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
