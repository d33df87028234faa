package lexer

import (
	"strings"

	"github.com/Warfley/gold-parser-tools/table"
)

// groupFrame tracks one open, possibly-nested group while scanning.
type groupFrame struct {
	group  *table.Group
	start  int
	nested []*Token
}

// scanGroup drives the nested group engine. tok is the already-matched
// GroupStart token that opened the outermost frame; pos is the position
// immediately after it.
func (l *Lexer) scanGroup(input []rune, tok *Token, pos int) (*Token, int, error) {
	stack := []*groupFrame{{group: tok.Symbol.Group, start: tok.Start}}
	curPos := pos

	for len(stack) > 0 && curPos < len(input) {
		top := stack[len(stack)-1]

		inner, newPos, err := l.NextToken(input, curPos)
		if err != nil {
			// Inside a group that tolerates arbitrary content: skip one
			// character and keep looking.
			curPos++
			continue
		}

		switch {
		case inner.Symbol.Kind == table.GroupStart && inner.Symbol.Group != nil && top.group.Nestable[inner.Symbol.Group.Name] != nil:
			stack = append(stack, &groupFrame{group: inner.Symbol.Group, start: inner.Start})
			curPos = newPos

		case inner.Symbol.Name == top.group.End.Name:
			end := newPos
			after := newPos
			if strings.EqualFold(inner.Symbol.Name, "newline") {
				// A line comment's closing newline belongs to whatever
				// comes next, not to the comment: exclude it from the
				// emitted text and leave the cursor sitting on it
				// rather than past it.
				end = inner.Start
				after = inner.Start
			}
			closed := &Token{
				Symbol:   top.group.Emitted,
				Text:     string(input[top.start:end]),
				Start:    top.start,
				Children: top.nested,
			}
			stack = stack[:len(stack)-1]
			curPos = after

			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.nested = append(parent.nested, closed)
			} else {
				return closed, curPos, nil
			}

		default:
			if top.group.Advance == table.AdvanceCharacter {
				curPos++
			} else {
				curPos = newPos
			}
		}
	}

	return l.closeAtEOI(stack, input)
}

// closeAtEOI handles end of input with frames still open: Open-mode
// frames are closed as if end-of-input were their end position,
// propagating outward; the first Closed-mode frame encountered (and
// everything still open beneath it) is reported as a GroupError.
func (l *Lexer) closeAtEOI(stack []*groupFrame, input []rune) (*Token, int, error) {
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.group.Ending != table.EndingOpen {
			break
		}

		closed := &Token{
			Symbol:   top.group.Emitted,
			Text:     string(input[top.start:len(input)]),
			Start:    top.start,
			Children: top.nested,
		}
		stack = stack[:len(stack)-1]

		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			parent.nested = append(parent.nested, closed)
		} else {
			return closed, len(input), nil
		}
	}

	frames := make([]OpenFrame, 0, len(stack))
	for i := len(stack) - 1; i >= 0; i-- {
		frames = append(frames, OpenFrame{Group: stack[i].group, Start: stack[i].start})
	}
	return nil, 0, newGroupError(frames)
}
