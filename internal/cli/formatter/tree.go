package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem represents a single node in a tree display.
type TreeItem struct {
	Title  string
	ID     int64 // 0 means don't display
	Level  int
	IsLast bool
	Done   bool
	// Flags are short markers shown after the title, e.g. "locked".
	Flags  []string
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeSpace  = "   "
)

// RenderTree renders TreeItems as an indented tree using box-drawing
// connectors. Done items get a green ✔ prefix and details are right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	contents := make([]string, len(items))
	maxWidth := 0
	for i, item := range items {
		idLabel := ""
		if item.ID != 0 {
			idLabel = StyleDim.Render(fmt.Sprintf("%d ", item.ID))
		}
		title := idLabel + item.Title
		if item.Done {
			title = StyleGreen.Render("✔ ") + idLabel + Dim(item.Title)
		}
		for _, f := range item.Flags {
			title += " " + StyleYellow.Render("["+f+"]")
		}
		contents[i] = treePrefix(items, i) + title
		maxWidth = max(maxWidth, lipgloss.Width(contents[i]))
	}

	var b strings.Builder
	for i, item := range items {
		b.WriteString(contents[i])
		if item.Detail != "" {
			pad := maxWidth - lipgloss.Width(contents[i])
			b.WriteString(strings.Repeat(" ", pad) + "  " + StyleBlue.Render(item.Detail))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// treePrefix draws the connectors for items[i]. An ancestor column gets a
// pipe while that ancestor still has later siblings.
func treePrefix(items []TreeItem, i int) string {
	item := items[i]
	if item.Level == 0 {
		return ""
	}
	var prefix strings.Builder
	for level := 1; level < item.Level; level++ {
		if ancestorIsLast(items, i, level) {
			prefix.WriteString(treeSpace)
		} else {
			prefix.WriteString(treePipe)
		}
	}
	if item.IsLast {
		prefix.WriteString(treeCorner)
	} else {
		prefix.WriteString(treeBranch)
	}
	return prefix.String()
}

func ancestorIsLast(items []TreeItem, i, level int) bool {
	for j := i - 1; j >= 0; j-- {
		if items[j].Level == level {
			return items[j].IsLast
		}
		if items[j].Level < level {
			break
		}
	}
	return false
}
