// Package punchlist parses the free-form outline that collects loose to-dos
// before they are filed into a project.
package punchlist

import (
	"regexp"
	"strings"
	"time"

	"github.com/alexanderramin/waypoint/internal/domain"
)

type LineKind int

const (
	LineText LineKind = iota
	LineBlank
	LineHeading
	LineCheck
	LineBullet
)

// Line is one line of the outline. Raw is the exact source text and is what
// Render writes back unless the line has been edited.
type Line struct {
	Raw     string
	Kind    LineKind
	Indent  int
	Checked bool
	// Text is the content after the list or heading marker.
	Text string

	// Shortcuts lifted out of Text.
	Title    string
	Tags     []string
	Delegate string
	Start    *time.Time
	Due      *time.Time

	lead   string
	marker string
}

// Document is a parsed punch list.
type Document struct {
	Lines []*Line
}

var (
	headingRe = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	checkRe   = regexp.MustCompile(`^([-*])\s+\[([ xX])\]\s?(.*)$`)
	bulletRe  = regexp.MustCompile(`^([-*])\s+(.*)$`)
	tagRe     = regexp.MustCompile(`^#[\p{L}\p{N}_-]+$`)
	mentionRe = regexp.MustCompile(`^@[\p{L}\p{N}_.-]+$`)
)

// Parse splits body into lines and classifies each one. It never fails;
// anything unrecognised is kept as plain text.
func Parse(body string) *Document {
	doc := &Document{}
	if body == "" {
		return doc
	}
	raw := strings.Split(strings.TrimSuffix(body, "\n"), "\n")
	for _, r := range raw {
		doc.Lines = append(doc.Lines, parseLine(strings.TrimSuffix(r, "\r")))
	}
	return doc
}

func parseLine(raw string) *Line {
	l := &Line{Raw: raw}
	trimmed := strings.TrimLeft(raw, " \t")
	l.lead = raw[:len(raw)-len(trimmed)]
	l.Indent = indentLevel(l.lead)

	switch {
	case strings.TrimSpace(raw) == "":
		l.Kind = LineBlank
		return l
	case l.Indent == 0 && headingRe.MatchString(trimmed):
		m := headingRe.FindStringSubmatch(trimmed)
		l.Kind = LineHeading
		l.marker = m[1]
		l.Text = m[2]
		l.Title = strings.TrimSpace(m[2])
		return l
	case checkRe.MatchString(trimmed):
		m := checkRe.FindStringSubmatch(trimmed)
		l.Kind = LineCheck
		l.marker = m[1]
		l.Checked = m[2] != " "
		l.Text = m[3]
	case bulletRe.MatchString(trimmed):
		m := bulletRe.FindStringSubmatch(trimmed)
		l.Kind = LineBullet
		l.marker = m[1]
		l.Text = m[2]
	default:
		l.Kind = LineText
		l.Text = trimmed
	}
	l.extractShortcuts()
	return l
}

// indentLevel counts one level per tab or per two spaces.
func indentLevel(lead string) int {
	level, spaces := 0, 0
	for _, r := range lead {
		if r == '\t' {
			level++
			spaces = 0
			continue
		}
		spaces++
		if spaces == 2 {
			level++
			spaces = 0
		}
	}
	return level
}

func (l *Line) extractShortcuts() {
	var words []string
	for _, w := range strings.Fields(l.Text) {
		switch {
		case tagRe.MatchString(w):
			l.Tags = append(l.Tags, strings.ToLower(w[1:]))
		case mentionRe.MatchString(w):
			l.Delegate = w[1:]
		case strings.HasPrefix(w, "due:"):
			if d, err := domain.ParseDate(w[len("due:"):]); err == nil && d != nil {
				l.Due = d
				continue
			}
			words = append(words, w)
		case strings.HasPrefix(w, "start:"):
			if d, err := domain.ParseDate(w[len("start:"):]); err == nil && d != nil {
				l.Start = d
				continue
			}
			words = append(words, w)
		default:
			words = append(words, w)
		}
	}
	l.Title = strings.Join(words, " ")
}

// IsItem reports whether the line is a checkbox or bullet.
func (l *Line) IsItem() bool {
	return l.Kind == LineCheck || l.Kind == LineBullet
}

// SetChecked marks a checkbox line done or open. Bullets become checkboxes.
func (l *Line) SetChecked(done bool) {
	if !l.IsItem() {
		return
	}
	l.Kind = LineCheck
	l.Checked = done
	box := "[ ]"
	if done {
		box = "[x]"
	}
	marker := l.marker
	if marker == "" {
		marker = "-"
	}
	l.Raw = l.lead + marker + " " + box + " " + l.Text
}
