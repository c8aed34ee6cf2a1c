// Package markdown implements COPRIS's single-pass, line-aware markdown
// recognizer: it detects a small, deliberately non-CommonMark-compliant
// subset of markup (emphasis, headings, blockquotes, inline/block code)
// and rewrites it into feature-command byte sequences looked up from the
// printer feature table. Grounded on original_source/src/markdown.c.
package markdown

import (
	"fmt"

	"github.com/bertronika/copris-go/internal/symtab"
)

type attribute int

const (
	none attribute = 0
	bold attribute = 1 << iota
	italic
	heading
	blockquote
	inlineCode
	codeBlock
	rule
)

// Transform rewrites markup in text into feature-command bytes resolved
// from syms, returning the transformed buffer and at most one warning
// about formatting left open at end of input: it names only the
// highest-priority still-open attribute and the line it probably
// started on.
func Transform(text []byte, syms *symtab.Table) ([]byte, []string) {
	out := make([]byte, 0, len(text))

	var (
		boldOn       bool
		italicOn     bool
		inlineCodeOn bool
		codeBlockOn  bool

		headingLevel  int
		codeBlockOpen bool
		blockquoteOpen bool

		currentLine int = 1
		errorLine   int
		lastChar    byte = ' '
	)

	insertCode := func(name string) {
		if e, ok := syms.Lookup(name); ok && !e.Empty() {
			out = append(out, e.Bytes()...)
		}
	}

	n := len(text)
	for i := 0; i < n; {
		attr := none
		startOfLine := i == 0 || lastChar == '\n'
		c := text[i]
		consumed := 1

		switch {
		case i+3 < n && c == '*' && text[i+1] == '*' && text[i+2] == '*' && text[i+3] == '\n':
			attr = rule
			consumed = 4

		case (c == '*' || c == '_') && i+1 < n && text[i+1] != ' ':
			if i+1 < n && (text[i+1] == '*' || text[i+1] == '_') {
				if i+2 < n && (text[i+2] == '*' || text[i+2] == '_') {
					attr = italic | bold
					boldOn = !boldOn
					italicOn = !italicOn
					consumed = 3
				} else {
					attr = bold
					boldOn = !boldOn
					consumed = 2
				}
			} else {
				attr = italic
				italicOn = !italicOn
				consumed = 1
			}

		case startOfLine && i+1 < n && c == '#':
			attr = heading
			switch {
			case i+4 < n && text[i+1] == '#' && text[i+2] == '#' && text[i+3] == '#' && text[i+4] == ' ':
				headingLevel = 4
				consumed = 5
			case i+3 < n && text[i+1] == '#' && text[i+2] == '#' && text[i+3] == ' ':
				headingLevel = 3
				consumed = 4
			case i+2 < n && text[i+1] == '#' && text[i+2] == ' ':
				headingLevel = 2
				consumed = 3
			case text[i+1] == ' ':
				headingLevel = 1
				consumed = 2
			default:
				attr = none
				consumed = 1
			}

		case startOfLine && i+1 < n && c == '>' && text[i+1] == ' ':
			attr = blockquote
			blockquoteOpen = true
			consumed = 2

		case c == '`' && !codeBlockOpen:
			if i+2 < n && text[i+1] == '`' && text[i+2] == '`' {
				attr = codeBlock
				codeBlockOn = !codeBlockOn
				consumed = 3
			} else {
				attr = inlineCode
				inlineCodeOn = !inlineCodeOn
				consumed = 1
			}

		case startOfLine && !codeBlockOn && i+3 < n &&
			c == ' ' && text[i+1] == ' ' && text[i+2] == ' ' && text[i+3] == ' ':
			attr = codeBlock
			codeBlockOpen = true
			consumed = 4
		}

		switch attr {
		case none:
			if text[i] == '\n' {
				switch {
				case headingLevel != 0:
					insertCode(fmt.Sprintf("F_H%d_OFF", headingLevel))
					headingLevel = 0
				case blockquoteOpen:
					insertCode("F_BLOCKQUOTE_OFF")
					blockquoteOpen = false
				case codeBlockOpen:
					insertCode("F_CODE_BLOCK_OFF")
					codeBlockOpen = false
				}
			}
			out = append(out, text[i])

		case italic | bold:
			if boldOn {
				insertCode("F_BOLD_ON")
			}
			if italicOn {
				insertCode("F_ITALIC_ON")
			} else {
				insertCode("F_ITALIC_OFF")
			}
			if !boldOn {
				insertCode("F_BOLD_OFF")
			}

		case italic:
			if italicOn {
				insertCode("F_ITALIC_ON")
				errorLine = currentLine
			} else {
				insertCode("F_ITALIC_OFF")
			}

		case bold:
			if boldOn {
				insertCode("F_BOLD_ON")
				errorLine = currentLine
			} else {
				insertCode("F_BOLD_OFF")
			}

		case heading:
			insertCode(fmt.Sprintf("F_H%d_ON", headingLevel))

		case blockquote:
			insertCode("F_BLOCKQUOTE_ON")

		case inlineCode:
			if inlineCodeOn {
				insertCode("F_INLINE_CODE_ON")
				errorLine = currentLine
			} else {
				insertCode("F_INLINE_CODE_OFF")
			}

		case codeBlock:
			if codeBlockOn || codeBlockOpen {
				insertCode("F_CODE_BLOCK_ON")
				if codeBlockOn {
					errorLine = currentLine
				}
			} else {
				insertCode("F_CODE_BLOCK_OFF")
			}

		case rule:
			out = append(out, "***\n"...)
		}

		for j := 0; j < consumed; j++ {
			ch := text[i+j]
			lastChar = ch
			if ch == '\n' {
				currentLine++
			}
		}
		i += consumed
	}

	// Close missing tags, unconditionally, in this fixed order.
	if codeBlockOn {
		insertCode("F_CODE_BLOCK_OFF")
	}
	if inlineCodeOn {
		insertCode("F_INLINE_CODE_OFF")
	}
	if boldOn {
		insertCode("F_BOLD_OFF")
	}
	if italicOn {
		insertCode("F_ITALIC_OFF")
	}

	// Report only the first (highest-priority) still-open attribute.
	var warnings []string
	switch {
	case codeBlockOn:
		warnings = append(warnings, fmt.Sprintf("code block still open on EOF, possibly in line %d", errorLine))
	case errorLine != 0 && inlineCodeOn:
		warnings = append(warnings, fmt.Sprintf("inline code still open on EOF, possibly in line %d", errorLine))
	case errorLine != 0 && boldOn:
		warnings = append(warnings, fmt.Sprintf("bold text still open on EOF, possibly in line %d", errorLine))
	case errorLine != 0 && italicOn:
		warnings = append(warnings, fmt.Sprintf("italic text still open on EOF, possibly in line %d", errorLine))
	}

	return out, warnings
}
