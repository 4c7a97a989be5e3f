package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/polymer/pkg/chain"
	"github.com/matzehuels/polymer/pkg/errors"
)

// XYZFrame is a single parsed XYZ frame.
type XYZFrame struct {
	Comment string
	Points  chain.Chain
}

// ParseXYZ parses a single-frame XYZ string.
func ParseXYZ(s string) (XYZFrame, error) {
	return ReadXYZ(strings.NewReader(s))
}

// ReadXYZ decodes a single XYZ frame from r.
//
// ReadXYZ returns an INVALID_FORMAT error if:
//   - The count line is missing, not an integer, or negative
//   - A record has fewer than four fields or an unparsable coordinate
//   - The number of records disagrees with the declared count
//
// Trailing blank lines are ignored. ReadXYZ does not close r.
func ReadXYZ(r io.Reader) (XYZFrame, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		line++
		return strings.TrimRight(sc.Text(), "\r"), true
	}

	header, ok := next()
	if !ok {
		if err := sc.Err(); err != nil {
			return XYZFrame{}, fmt.Errorf("read xyz: %w", err)
		}
		return XYZFrame{}, errors.New(errors.ErrCodeInvalidFormat, "empty xyz input")
	}
	count, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || count < 0 {
		return XYZFrame{}, errors.New(errors.ErrCodeInvalidFormat, "line 1: invalid atom count %q", header)
	}

	comment, ok := next()
	if !ok {
		return XYZFrame{}, errors.New(errors.ErrCodeInvalidFormat, "line 2: missing comment line")
	}

	frame := XYZFrame{Comment: comment, Points: make(chain.Chain, 0, count)}
	for {
		text, ok := next()
		if !ok {
			break
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if len(frame.Points) == count {
			return XYZFrame{}, errors.New(errors.ErrCodeInvalidFormat, "line %d: more records than declared count %d", line, count)
		}
		p, err := parseRecord(fields)
		if err != nil {
			return XYZFrame{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "line %d", line)
		}
		frame.Points = append(frame.Points, p)
	}
	if err := sc.Err(); err != nil {
		return XYZFrame{}, fmt.Errorf("read xyz: %w", err)
	}

	if len(frame.Points) != count {
		return XYZFrame{}, errors.New(errors.ErrCodeInvalidFormat, "declared %d atoms but found %d records", count, len(frame.Points))
	}
	return frame, nil
}

func parseRecord(fields []string) (chain.Point, error) {
	if len(fields) < 4 {
		return chain.Point{}, fmt.Errorf("expected label x y z, got %d fields", len(fields))
	}
	p := chain.Point{Label: fields[0]}
	for i, dst := range []*float64{&p.X, &p.Y, &p.Z} {
		v, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return chain.Point{}, fmt.Errorf("coordinate %q: %w", fields[i+1], err)
		}
		*dst = v
	}
	return p, nil
}

// ImportXYZ reads an XYZ file at path.
// A missing file yields a FILE_NOT_FOUND error.
func ImportXYZ(path string) (XYZFrame, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return XYZFrame{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return XYZFrame{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadXYZ(f)
}

// ReadJSON decodes a Document written by [WriteJSON].
func ReadJSON(r io.Reader) (Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	return d, d.check()
}

// ReadYAML decodes a Document written by [WriteYAML].
func ReadYAML(r io.Reader) (Document, error) {
	var d Document
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
	}
	return d, d.check()
}

// ReadMsgpack decodes a Document written by [WriteMsgpack].
func ReadMsgpack(r io.Reader) (Document, error) {
	var d Document
	dec := msgpack.NewDecoder(r)
	dec.SetCustomStructTag("json")
	if err := dec.Decode(&d); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode msgpack")
	}
	return d, d.check()
}

func (d Document) check() error {
	if d.Count != len(d.Points) {
		return errors.New(errors.ErrCodeInvalidFormat, "declared %d points but found %d", d.Count, len(d.Points))
	}
	return nil
}
