package punchlist

import (
	"strings"
)

// Render writes the document back out. Unedited lines are reproduced byte
// for byte.
func (d *Document) Render() string {
	if len(d.Lines) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, l := range d.Lines {
		sb.WriteString(l.Raw)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Entry is an open top-level item together with the lines nested under it.
type Entry struct {
	Line     *Line
	Index    int
	Children []*Line
	Section  string
}

// Open returns every unchecked top-level checkbox with its nested items.
// Plain text and blank lines inside the block are skipped.
func (d *Document) Open() []*Entry {
	var (
		out     []*Entry
		cur     *Entry
		section string
	)
	for i, l := range d.Lines {
		switch {
		case l.Kind == LineHeading:
			section = l.Title
			cur = nil
		case l.Kind == LineBlank:
			continue
		case l.Indent == 0:
			cur = nil
			if l.Kind == LineCheck && !l.Checked && l.Title != "" {
				cur = &Entry{Line: l, Index: i, Section: section}
				out = append(out, cur)
			}
		case cur != nil && l.IsItem() && l.Title != "":
			cur.Children = append(cur.Children, l)
		}
	}
	return out
}

// Append adds an open checkbox at the end of the document.
func (d *Document) Append(text string) *Line {
	l := parseLine("- [ ] " + strings.TrimSpace(text))
	d.Lines = append(d.Lines, l)
	return l
}

// Stats counts checkbox lines at any depth.
func (d *Document) Stats() (open, done int) {
	for _, l := range d.Lines {
		if l.Kind != LineCheck {
			continue
		}
		if l.Checked {
			done++
		} else {
			open++
		}
	}
	return open, done
}
