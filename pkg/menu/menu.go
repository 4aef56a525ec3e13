// Package menu shows the termui screens of an interactive run: the network
// picker, the wordlist prompt and the attempt progress box.
package menu

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
	"github.com/u-root/wlanaudit/pkg/wifi"
)

const (
	menuWidth    = 70
	pageSize     = 10
	menuHeight   = pageSize + 2
	resultWidth  = 70
	resultHeight = 10
)

// ErrCanceled is returned when the operator leaves a screen with <Escape>.
var ErrCanceled = errors.New("canceled by operator")

type validCheck func(string) (string, string, bool)

// Entry is anything the menu can list.
type Entry interface {
	// Label returns the string shown in the menu.
	Label() string
}

var _ = Entry(wifi.Network{})

func Init() error {
	return ui.Init()
}

func Close() {
	ui.Close()
}

// AlwaysValid is a special isValid function that check nothing
func AlwaysValid(input string) (string, string, bool) {
	return input, "", true
}

// newParagraph returns a widgets.Paragraph struct with given initial text.
func newParagraph(initText string, border bool, location int, wid int, ht int) *widgets.Paragraph {
	p := widgets.NewParagraph()
	p.Text = initText
	p.Border = border
	p.SetRect(0, location, wid, location+ht)
	p.TextStyle.Fg = ui.ColorWhite
	return p
}

// readKey reads a key from input stream.
func readKey(uiEvents <-chan ui.Event) string {
	for {
		e := <-uiEvents
		if e.Type == ui.KeyboardEvent || e.Type == ui.MouseEvent {
			return e.ID
		}
	}
}

// edit applies a printable key or <Backspace>/<Space> to text. It reports
// false for keys it does not handle.
func edit(text, k string) (string, bool) {
	switch {
	case k == "<Backspace>":
		if len(text) > 0 {
			text = text[:len(text)-1]
		}
		return text, true
	case k == "<Space>":
		return text + " ", true
	case k != "" && k[0:1] != "<":
		// termui names special keys "<F1>", "<Tab>" and so on.
		return text + k, true
	}
	return text, false
}

// processInput presents an input box and returns what the operator typed
// once isValid accepts it.
func processInput(introwords string, location int, wid int, isValid validCheck, uiEvents <-chan ui.Event) (string, error) {
	intro := newParagraph(introwords, false, location, len(introwords)+4, 3)
	location += 2
	input := newParagraph("", true, location, wid, 3)
	location += 3
	warning := newParagraph("", false, location, wid, 3)

	ui.Render(intro, input, warning)
	for {
		k := readKey(uiEvents)
		switch k {
		case "<C-d>", "<C-c>":
			return input.Text, io.EOF
		case "<Escape>":
			return "", ErrCanceled
		case "<Enter>":
			s, w, ok := isValid(input.Text)
			if ok {
				return s, nil
			}
			input.Text, warning.Text = "", w
			ui.Render(input, warning)
		default:
			if t, ok := edit(input.Text, k); ok {
				input.Text = t
				ui.Render(input)
			}
		}
	}
}

// NewInputWindow opens a window with a single-line input box.
func NewInputWindow(introwords string, isValid validCheck, uiEvents <-chan ui.Event) (string, error) {
	defer ui.Clear()
	return processInput(introwords, 0, menuWidth, isValid, uiEvents)
}

// WordlistPath asks for the wordlist to use; an empty answer picks def.
func WordlistPath(def string, uiEvents <-chan ui.Event) (string, error) {
	intro := fmt.Sprintf("Enter path to password wordlist (default: %s):", def)
	return NewInputWindow(intro, func(s string) (string, string, bool) {
		if s = strings.TrimSpace(s); s == "" {
			return def, "", true
		}
		return s, "", true
	}, uiEvents)
}

// pager tracks the window of labels visible in the list widget.
type pager struct {
	labels      []string
	first, last int
}

func newPager(labels []string) *pager {
	return &pager{labels: labels, last: min(pageSize, len(labels))}
}

func (p *pager) moveTo(first int) {
	p.first = max(0, min(first, len(p.labels)-pageSize))
	p.last = min(p.first+pageSize, len(p.labels))
}

// key scrolls for navigation keys and reports whether k was one.
func (p *pager) key(k string) bool {
	switch k {
	case "<Left>", "<PageUp>":
		p.moveTo(p.first - pageSize)
	case "<Right>", "<PageDown>":
		if p.first+pageSize < len(p.labels) {
			p.moveTo(p.first + pageSize)
		}
	case "<Up>", "<MouseWheelUp>":
		p.moveTo(p.first - 1)
	case "<Down>", "<MouseWheelDown>":
		p.moveTo(p.first + 1)
	case "<Home>":
		p.moveTo(0)
	case "<End>":
		p.moveTo(len(p.labels))
	default:
		return false
	}
	return true
}

func (p *pager) render(l *widgets.List, title string) {
	l.Rows = p.labels[p.first:p.last]
	l.Title = fmt.Sprintf("%s---%v/%v", title, p.first+1, len(p.labels))
	ui.Render(l)
}

// DisplayMenu lists entries as "<n>: <label>" with n starting at 1 and
// returns the one whose number the operator enters. Any listed number is
// accepted, not only those on the visible page.
func DisplayMenu(menuTitle string, introwords string, entries []Entry, uiEvents <-chan ui.Event) (Entry, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("no entry in the menu")
	}
	defer ui.Clear()

	labels := make([]string, 0, len(entries))
	for i, e := range entries {
		labels = append(labels, fmt.Sprintf("%d: %s", i+1, e.Label()))
	}

	location := 0
	list := widgets.NewList()
	list.SetRect(0, location, menuWidth, location+menuHeight)
	list.TextStyle.Fg = ui.ColorWhite
	location += menuHeight

	intro := newParagraph(introwords, false, location, len(introwords)+4, 3)
	location += 2
	input := newParagraph("", true, location, menuWidth, 3)
	location += 3
	warning := newParagraph("", false, location, menuWidth, 3)

	p := newPager(labels)
	p.render(list, menuTitle)
	ui.Render(intro, input, warning)

	for {
		k := readKey(uiEvents)
		switch {
		case k == "<C-d>" || k == "<C-c>":
			return nil, io.EOF
		case k == "<Escape>":
			return nil, ErrCanceled
		case k == "<Enter>":
			c, err := strconv.Atoi(strings.TrimSpace(input.Text))
			input.Text = ""
			if err == nil && c >= 1 && c <= len(entries) {
				return entries[c-1], nil
			}
			warning.Text = "Please enter a valid entry number."
			ui.Render(input, warning)
		case p.key(k):
			p.render(list, menuTitle)
		default:
			if t, ok := edit(input.Text, k); ok {
				input.Text = t
				ui.Render(input)
			}
		}
	}
}

// SelectNetwork lets the operator pick one of networks.
func SelectNetwork(networks []wifi.Network, uiEvents <-chan ui.Event) (wifi.Network, error) {
	entries := make([]Entry, 0, len(networks))
	for _, n := range networks {
		entries = append(entries, n)
	}
	e, err := DisplayMenu("Wireless Networks", "Select a network by number", entries, uiEvents)
	if err != nil {
		return wifi.Network{}, err
	}
	return e.(wifi.Network), nil
}

// Progress is a bordered box showing the latest attempt.
type Progress struct {
	paragraph *widgets.Paragraph
}

func NewProgress(title string) *Progress {
	p := widgets.NewParagraph()
	p.Border = true
	p.SetRect(0, 0, resultWidth, resultHeight)
	p.TextStyle.Fg = ui.ColorWhite
	p.Title = title
	ui.Render(p)
	return &Progress{paragraph: p}
}

func (p *Progress) Update(text string) {
	p.paragraph.Text = text
	ui.Render(p.paragraph)
}

// Text returns what the box currently shows.
func (p *Progress) Text() string {
	return p.paragraph.Text
}

func (p *Progress) Close() {
	ui.Clear()
}
