package extract

import (
	"regexp"
	"strings"
)

// listItem is one top-level bullet, numbered entry or bold-label line.
type listItem struct {
	Text     string
	Label    string
	Numbered bool
	Sub      []string
}

// FullText joins the item text with its sub-items.
func (it listItem) FullText() string {
	if len(it.Sub) == 0 {
		return it.Text
	}
	return it.Text + "\n" + strings.Join(it.Sub, "\n")
}

var (
	listLine  = regexp.MustCompile(`^(\s*)([-*•+]|\d+[.)])\s+(.*)$`)
	boldLabel = regexp.MustCompile(`^\*\*([^*]+?):\*\*\s*(.+)$|^\*\*([^*]+?)\*\*\s*:\s*(.+)$`)
)

// listItems splits body into top-level items. Deeper-indented list lines
// become sub-items of the preceding item; indented prose continues it.
// Unindented prose between items is dropped.
func listItems(body string) []listItem {
	var items []listItem
	base := -1
	open := false

	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if m := listLine.FindStringSubmatch(line); m != nil {
			indent := indentWidth(m[1])
			if base < 0 || indent <= base || len(items) == 0 {
				if base < 0 || indent < base {
					base = indent
				}
				items = append(items, listItem{
					Text:     strings.TrimSpace(m[3]),
					Numbered: m[2][0] >= '0' && m[2][0] <= '9',
				})
				open = true
				continue
			}
			if open {
				last := &items[len(items)-1]
				last.Sub = append(last.Sub, strings.TrimSpace(m[3]))
			}
			continue
		}

		leading := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		trimmed := strings.TrimSpace(line)

		if leading == "" {
			if m := boldLabel.FindStringSubmatch(trimmed); m != nil {
				label, rest := m[1], m[2]
				if label == "" {
					label, rest = m[3], m[4]
				}
				items = append(items, listItem{
					Text:  strings.TrimSpace(label) + ": " + strings.TrimSpace(rest),
					Label: strings.TrimSpace(label),
				})
				open = true
				continue
			}
			open = false
			continue
		}

		if open {
			last := &items[len(items)-1]
			if len(last.Sub) > 0 {
				last.Sub[len(last.Sub)-1] += " " + trimmed
			} else {
				last.Text += " " + trimmed
			}
		}
	}

	return items
}

func indentWidth(s string) int {
	n := 0
	for _, r := range s {
		if r == '\t' {
			n += 4
		} else {
			n++
		}
	}
	return n
}

// flatten joins the non-empty lines of body into one line.
func flatten(body string) string {
	var parts []string
	for _, line := range strings.Split(body, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}
