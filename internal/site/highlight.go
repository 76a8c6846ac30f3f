// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/site/highlight.go
// Summary: Syntax colouring for the code snippets on gallery cards.
// Notes: go-enry picks the language from the filename and content, chroma
// tokenises. Tokens in the style's base colour keep the caller's style.

package site

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
	"github.com/go-enry/go-enry/v2"
)

const defaultCodeStyle = "monokai"

// Span is a run of text drawn in one style.
type Span struct {
	Text  string
	Style tcell.Style
}

// lexerFor resolves a lexer from what enry detects, then chroma's own
// filename match and content analysis.
func lexerFor(filename, code string) chroma.Lexer {
	if lang := enry.GetLanguage(filename, []byte(code)); lang != "" {
		if l := lexers.Get(lang); l != nil {
			return l
		}
	}
	if l := lexers.Match(filename); l != nil {
		return l
	}
	if l := lexers.Analyse(code); l != nil {
		return l
	}
	return lexers.Fallback
}

// Highlight splits code into lines of styled spans. base is used for text the
// chroma style leaves in its default colour.
func Highlight(filename, code, styleName string, base tcell.Style) [][]Span {
	if styleName == "" {
		styleName = defaultCodeStyle
	}
	style := styles.Get(styleName)
	lexer := chroma.Coalesce(lexerFor(filename, code))

	tokens, err := chroma.Tokenise(lexer, nil, code)
	if err != nil {
		return plainLines(code, base)
	}
	baseColour := style.Get(chroma.Text).Colour

	lines := [][]Span{nil}
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		st := tokenStyle(style.Get(tok.Type), baseColour, base)
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, nil)
			}
			if part == "" {
				continue
			}
			last := len(lines) - 1
			lines[last] = append(lines[last], Span{Text: part, Style: st})
		}
	}
	// chroma appends a newline to the final token.
	if n := len(lines); n > 1 && len(lines[n-1]) == 0 && !strings.HasSuffix(code, "\n") {
		lines = lines[:n-1]
	}
	return lines
}

func tokenStyle(entry chroma.StyleEntry, baseColour chroma.Colour, base tcell.Style) tcell.Style {
	st := base
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	if !entry.Colour.IsSet() || entry.Colour == baseColour {
		return st
	}
	return st.Foreground(tcell.NewRGBColor(
		int32(entry.Colour.Red()),
		int32(entry.Colour.Green()),
		int32(entry.Colour.Blue()),
	))
}

func plainLines(code string, base tcell.Style) [][]Span {
	raw := strings.Split(code, "\n")
	out := make([][]Span, len(raw))
	for i, line := range raw {
		if line != "" {
			out[i] = []Span{{Text: line, Style: base}}
		}
	}
	return out
}

// SpansText joins the text of a line of spans.
func SpansText(line []Span) string {
	var sb strings.Builder
	for _, s := range line {
		sb.WriteString(s.Text)
	}
	return sb.String()
}
