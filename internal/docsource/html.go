package docsource

import (
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLToText renders an HTML document as Markdown-like plain text: headings
// become "#" lines, list items become "- " or "N. " lines and block
// elements end a line. Script and style content is dropped.
func HTMLToText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	w := &textWriter{}
	w.walk(doc)
	w.newline()
	return strings.TrimSpace(w.buf.String()) + "\n", nil
}

type textWriter struct {
	buf     strings.Builder
	line    strings.Builder
	lists   []int  // item counters; -1 for unordered lists
	prefix  string // written before the next text on the current line
	inPre   bool
	skipped int
}

var headingLevel = map[atom.Atom]int{
	atom.H1: 1, atom.H2: 2, atom.H3: 3, atom.H4: 4, atom.H5: 5, atom.H6: 6,
}

func (w *textWriter) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		if w.skipped > 0 {
			return
		}
		w.text(n.Data)
		return
	case html.ElementNode:
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			w.walk(c)
		}
		return
	}

	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Head, atom.Noscript:
		w.skipped++
		defer func() { w.skipped-- }()
	case atom.Br:
		w.newline()
		return
	case atom.Ul, atom.Ol:
		w.newline()
		counter := -1
		if n.DataAtom == atom.Ol {
			counter = 0
		}
		w.lists = append(w.lists, counter)
		defer func() {
			w.lists = w.lists[:len(w.lists)-1]
			w.newline()
		}()
	case atom.Li:
		w.newline()
		w.prefix = w.bullet()
		defer func() {
			w.prefix = ""
			w.newline()
		}()
	case atom.Pre:
		w.newline()
		w.inPre = true
		defer func() {
			w.inPre = false
			w.newline()
		}()
	default:
		if level, ok := headingLevel[n.DataAtom]; ok {
			w.blank()
			w.prefix = strings.Repeat("#", level) + " "
			defer func() {
				w.prefix = ""
				w.blank()
			}()
		} else if isBlock(n.DataAtom) {
			w.newline()
			defer w.newline()
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

func (w *textWriter) bullet() string {
	depth := len(w.lists)
	if depth == 0 {
		return "- "
	}
	indent := strings.Repeat("  ", depth-1)
	if w.lists[depth-1] < 0 {
		return indent + "- "
	}
	w.lists[depth-1]++
	return indent + strconv.Itoa(w.lists[depth-1]) + ". "
}

func (w *textWriter) text(s string) {
	if w.prefix != "" && strings.TrimSpace(s) != "" {
		w.line.WriteString(w.prefix)
		w.prefix = ""
	}
	if w.inPre {
		for i, part := range strings.Split(s, "\n") {
			if i > 0 {
				w.newline()
			}
			w.line.WriteString(part)
		}
		return
	}
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return
	}
	cur := w.line.String()
	if cur != "" && !strings.HasSuffix(cur, " ") {
		w.line.WriteByte(' ')
	}
	w.line.WriteString(s)
}

// newline ends the current line if it has content.
func (w *textWriter) newline() {
	line := strings.TrimRight(w.line.String(), " ")
	w.line.Reset()
	if strings.TrimSpace(line) == "" {
		return
	}
	w.buf.WriteString(line)
	w.buf.WriteByte('\n')
}

// blank ends the current line and leaves an empty line after it.
func (w *textWriter) blank() {
	w.newline()
	if s := w.buf.String(); s != "" && !strings.HasSuffix(s, "\n\n") {
		w.buf.WriteByte('\n')
	}
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Section, atom.Article, atom.Header, atom.Footer,
		atom.Blockquote, atom.Table, atom.Tr, atom.Main, atom.Nav, atom.Aside:
		return true
	}
	return false
}
