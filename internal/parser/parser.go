// Package parser turns pixelsrc source streams into typed objects.
//
// Source files are line-oriented: every non-blank line holds one JSON
// or JSON5 object with a "type" discriminator. Parsing is lenient; a
// bad line becomes a warning and the rest of the stream still parses.
package parser

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/titanous/json5"

	"github.com/scbrown/pixelsrc/internal/model"
)

// Warning is a non-fatal parse problem tied to a 1-indexed source line.
type Warning struct {
	Message string
	Line    int
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Message)
}

// Result is the outcome of parsing one stream: objects in source order
// plus warnings for every line that could not be understood.
type Result struct {
	Objects  []model.Object
	Warnings []Warning
}

// maxLineSize bounds a single source line. Sprite grids are the widest
// lines in practice and stay far below this.
const maxLineSize = 4 << 20

// ParseStream reads every line of r and decodes each non-blank one.
// Decode failures never abort the stream; they are reported as warnings
// with the offending line number.
func ParseStream(r io.Reader) *Result {
	res := &Result{}

	data, err := io.ReadAll(r)
	if err != nil {
		res.Warnings = append(res.Warnings, Warning{
			Message: fmt.Sprintf("read error: %v", err),
			Line:    0,
		})
		return res
	}

	sc := bufio.NewScanner(bytes.NewReader(toUTF8(data)))
	sc.Buffer(make([]byte, 64*1024), maxLineSize)

	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		obj, err := ParseLine(line)
		if err != nil {
			res.Warnings = append(res.Warnings, Warning{
				Message: err.Error(),
				Line:    lineNum,
			})
			continue
		}
		res.Objects = append(res.Objects, obj)
	}
	if err := sc.Err(); err != nil {
		res.Warnings = append(res.Warnings, Warning{
			Message: fmt.Sprintf("read error: %v", err),
			Line:    lineNum + 1,
		})
	}
	return res
}

// ParseLine decodes a single source line into a typed object.
func ParseLine(line string) (model.Object, error) {
	data, err := normalize([]byte(line))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	switch model.Kind(probe.Type) {
	case model.KindPalette:
		return decodeAs[model.Palette](data)
	case model.KindSprite:
		return decodeAs[model.Sprite](data)
	case model.KindVariant:
		return decodeAs[model.Variant](data)
	case model.KindTransform:
		return decodeAs[model.Transform](data)
	case model.KindComposition:
		return decodeAs[model.Composition](data)
	case model.KindAnimation:
		return decodeAs[model.Animation](data)
	case model.KindParticle:
		return decodeAs[model.Particle](data)
	case model.KindStateRules:
		return decodeAs[model.StateRules](data)
	case model.KindImport:
		return decodeAs[model.Import](data)
	case "":
		return nil, fmt.Errorf("missing \"type\" field")
	default:
		return nil, fmt.Errorf("unknown object type %q", probe.Type)
	}
}

func decodeAs[T model.Object](data []byte) (model.Object, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("invalid %s object: %w", v.Kind(), err)
	}
	return v, nil
}

// normalize returns strict JSON bytes for the line. Plain JSON passes
// through untouched; JSON5 leniencies (unquoted keys, trailing commas,
// single quotes, comments) are rewritten through a decode/encode round
// trip so downstream unmarshalers only ever see standard JSON.
func normalize(data []byte) ([]byte, error) {
	if json.Valid(data) {
		return data, nil
	}
	var loose map[string]any
	if err := json5.Unmarshal(data, &loose); err != nil {
		return nil, err
	}
	return json.Marshal(loose)
}
