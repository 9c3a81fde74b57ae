// Package todotext encodes a daily note's todo list as a line-oriented,
// human-readable text blob.
//
// Grammar, per line:
//
//	[ ] first line of an open item
//	[x] first line of a done item @remind:HH:mm
//	  continuation line of the current item (two-space indent)
//
// A reminder suffix is only recognized at the end of an item's first line.
// A non-blank line that is neither checkbox-prefixed nor indented starts a
// new open item; that keeps blobs written before the checkbox format
// parseable.
package todotext

import (
	"regexp"
	"strings"
)

// Item is one todo entry. Text may span multiple lines. Reminder is an
// "HH:mm" wall-clock string or empty.
type Item struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Reminder  string `json:"reminder,omitempty"`
}

const (
	openMarker   = "[ ] "
	doneMarker   = "[x] "
	indent       = "  "
	remindPrefix = " @remind:"
)

var remindRe = regexp.MustCompile(` @remind:(\d{2}:\d{2})$`)

// Serialize renders items into the text format. Serialize and Parse
// round-trip any item list whose text lines do not themselves start with
// the two-space continuation indent.
func Serialize(items []Item) string {
	var b strings.Builder

	for i, item := range items {
		lines := strings.Split(item.Text, "\n")

		if item.Completed {
			b.WriteString(doneMarker)
		} else {
			b.WriteString(openMarker)
		}
		b.WriteString(lines[0])
		if item.Reminder != "" {
			b.WriteString(remindPrefix)
			b.WriteString(item.Reminder)
		}

		for _, line := range lines[1:] {
			b.WriteString("\n")
			b.WriteString(indent)
			b.WriteString(line)
		}

		if i < len(items)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// Parse decodes a blob back into items. Unrecognized bare lines become
// open items with no reminder rather than failing the whole blob.
func Parse(content string) []Item {
	if content == "" {
		return nil
	}

	var items []Item
	var cur *Item

	flush := func() {
		if cur != nil {
			items = append(items, *cur)
			cur = nil
		}
	}

	for _, line := range strings.Split(content, "\n") {
		switch {
		case strings.HasPrefix(line, openMarker) || strings.HasPrefix(line, doneMarker):
			flush()
			first := line[len(openMarker):]
			item := Item{Completed: strings.HasPrefix(line, doneMarker)}
			if m := remindRe.FindStringSubmatch(first); m != nil {
				item.Reminder = m[1]
				first = first[:len(first)-len(m[0])]
			}
			item.Text = first
			cur = &item

		case cur != nil && strings.HasPrefix(line, indent):
			cur.Text += "\n" + line[len(indent):]

		case cur != nil && line == "":
			// Blank continuation inside an item keeps its newline.
			cur.Text += "\n"

		case line == "":
			// Blank line between items, nothing to attach it to.

		default:
			// Legacy content without checkbox markers.
			flush()
			cur = &Item{Text: line}
		}
	}
	flush()

	return items
}
