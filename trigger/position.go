// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: trigger/position.go
// Summary: Start/end positions for viewport triggers.
// Usage: ParsePosition("top 80%"), ParsePosition("+=1200"),
// ParsePosition("start + element_height * 2").
// Notes: Positions resolve to absolute scroll offsets against measured layout.

package trigger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Metrics is the layout a position resolves against, in content rows.
type Metrics struct {
	ElementTop     float64
	ElementHeight  float64
	ViewportWidth  float64
	ViewportHeight float64
}

// Position resolves to an absolute scroll offset. start is the already
// resolved start offset (zero when resolving the start itself).
type Position interface {
	Resolve(m Metrics, start float64) (float64, error)
	String() string
}

// Anchor is a point along an element or the viewport: a fraction of its
// height plus a fixed number of rows.
type Anchor struct {
	Fraction float64
	Rows     float64
}

func (a Anchor) at(origin, size float64) float64 {
	return origin + a.Fraction*size + a.Rows
}

var (
	AnchorTop    = Anchor{Fraction: 0}
	AnchorCenter = Anchor{Fraction: 0.5}
	AnchorBottom = Anchor{Fraction: 1}
)

// AnchorPosition fires when the element anchor meets the viewport anchor.
type AnchorPosition struct {
	Element  Anchor
	Viewport Anchor
	raw      string
}

func (p AnchorPosition) Resolve(m Metrics, _ float64) (float64, error) {
	return p.Element.at(m.ElementTop, m.ElementHeight) - p.Viewport.at(0, m.ViewportHeight), nil
}

func (p AnchorPosition) String() string {
	if p.raw != "" {
		return p.raw
	}
	return fmt.Sprintf("%v %v", p.Element, p.Viewport)
}

// RelativePosition is an offset from the resolved start ("+=N").
type RelativePosition struct {
	Delta float64
}

func (p RelativePosition) Resolve(_ Metrics, start float64) (float64, error) {
	return start + p.Delta, nil
}

func (p RelativePosition) String() string {
	if p.Delta < 0 {
		return "-=" + strconv.FormatFloat(-p.Delta, 'g', -1, 64)
	}
	return "+=" + strconv.FormatFloat(p.Delta, 'g', -1, 64)
}

// AbsolutePosition is a fixed scroll offset.
type AbsolutePosition float64

func (p AbsolutePosition) Resolve(Metrics, float64) (float64, error) {
	return float64(p), nil
}

func (p AbsolutePosition) String() string {
	return strconv.FormatFloat(float64(p), 'g', -1, 64)
}

// ExprPosition evaluates an arithmetic expression over the layout metrics.
// Available names: start, element_top, element_height, viewport_height,
// viewport_width.
type ExprPosition struct {
	source  string
	program *vm.Program
}

func exprEnv(m Metrics, start float64) map[string]any {
	return map[string]any{
		"start":           start,
		"element_top":     m.ElementTop,
		"element_height":  m.ElementHeight,
		"viewport_height": m.ViewportHeight,
		"viewport_width":  m.ViewportWidth,
	}
}

// CompileExpr compiles an expression position.
func CompileExpr(source string) (*ExprPosition, error) {
	program, err := expr.Compile(source, expr.Env(exprEnv(Metrics{}, 0)), expr.AsFloat64())
	if err != nil {
		return nil, fmt.Errorf("compile position %q: %w", source, err)
	}
	return &ExprPosition{source: source, program: program}, nil
}

func (p *ExprPosition) Resolve(m Metrics, start float64) (float64, error) {
	out, err := expr.Run(p.program, exprEnv(m, start))
	if err != nil {
		return 0, fmt.Errorf("evaluate position %q: %w", p.source, err)
	}
	v, ok := out.(float64)
	if !ok {
		return 0, fmt.Errorf("evaluate position %q: got %T, want float64", p.source, out)
	}
	return v, nil
}

func (p *ExprPosition) String() string { return p.source }

// ParsePosition parses a trigger position. Accepted forms:
//
//	"top 80%"        element anchor, viewport anchor (top|center|bottom|N%|N)
//	"+=1200", "-=50" relative to the resolved start
//	"640"            absolute offset
//	anything else    an expression, e.g. "start + element_height * 2"
func ParsePosition(s string) (Position, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty position")
	}

	if strings.HasPrefix(s, "+=") || strings.HasPrefix(s, "-=") {
		v, err := strconv.ParseFloat(strings.TrimSpace(s[2:]), 64)
		if err != nil {
			return nil, fmt.Errorf("parse relative position %q: %w", s, err)
		}
		if s[0] == '-' {
			v = -v
		}
		return RelativePosition{Delta: v}, nil
	}

	fields := strings.Fields(s)
	if len(fields) == 1 {
		if v, err := strconv.ParseFloat(fields[0], 64); err == nil {
			return AbsolutePosition(v), nil
		}
	}
	if len(fields) == 2 {
		el, okEl := parseAnchor(fields[0])
		vp, okVp := parseAnchor(fields[1])
		if okEl && okVp {
			return AnchorPosition{Element: el, Viewport: vp, raw: s}, nil
		}
	}

	return CompileExpr(s)
}

// MustParsePosition is ParsePosition for literals known to be valid.
func MustParsePosition(s string) Position {
	p, err := ParsePosition(s)
	if err != nil {
		panic("trigger: " + err.Error())
	}
	return p
}

func parseAnchor(tok string) (Anchor, bool) {
	switch strings.ToLower(tok) {
	case "top", "left":
		return AnchorTop, true
	case "center":
		return AnchorCenter, true
	case "bottom", "right":
		return AnchorBottom, true
	}
	if strings.HasSuffix(tok, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(tok, "%"), 64)
		if err != nil {
			return Anchor{}, false
		}
		return Anchor{Fraction: v / 100}, true
	}
	tok = strings.TrimSuffix(tok, "px")
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return Anchor{}, false
	}
	return Anchor{Rows: v}, true
}
