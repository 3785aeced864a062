package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

type styles struct {
	say      lipgloss.Style
	yell     lipgloss.Style
	section  lipgloss.Style
	question lipgloss.Style
	key      lipgloss.Style
	note     lipgloss.Style
	info     lipgloss.Style
	warning  lipgloss.Style
	success  lipgloss.Style
	err      lipgloss.Style
	header   lipgloss.Style
	cell     lipgloss.Style
	border   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		say:      r.NewStyle().Foreground(lipgloss.Color("42")),
		yell:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("214")).Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("214")).Padding(0, 1),
		section:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		question: r.NewStyle().Foreground(lipgloss.Color("42")),
		key:      r.NewStyle().Foreground(lipgloss.Color("214")),
		note:     r.NewStyle().Foreground(lipgloss.Color("214")),
		info:     r.NewStyle().Foreground(lipgloss.Color("42")),
		warning:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")),
		success:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("42")),
		err:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(lipgloss.Color("196")),
		header:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("42")).Padding(0, 1),
		cell:     r.NewStyle().Padding(0, 1),
		border:   r.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// Say prints an informational line prefixed with an arrow.
func (o *IO) Say(msg string) {
	fmt.Fprintln(o.out, o.styles.say.Render("➜  ")+msg)
}

// Yell prints msg inside a box so it stands out from process output.
func (o *IO) Yell(msg string) {
	fmt.Fprintln(o.out, o.styles.yell.Render(msg))
}

func (o *IO) Writeln(msg string) {
	fmt.Fprintln(o.out, msg)
}

// Section prints an underlined title.
func (o *IO) Section(title string) {
	fmt.Fprintln(o.out)
	fmt.Fprintln(o.out, o.styles.section.Render(title))
	fmt.Fprintln(o.out, o.styles.section.Render(strings.Repeat("-", lipgloss.Width(title))))
	fmt.Fprintln(o.out)
}

func (o *IO) Note(msg string)    { o.block("! [NOTE]", msg, o.styles.note) }
func (o *IO) Info(msg string)    { o.block("[INFO]", msg, o.styles.info) }
func (o *IO) Warning(msg string) { o.block("[WARNING]", msg, o.styles.warning) }
func (o *IO) Success(msg string) { o.block("[OK]", msg, o.styles.success) }
func (o *IO) Error(msg string)   { o.block("[ERROR]", msg, o.styles.err) }

func (o *IO) block(label, msg string, style lipgloss.Style) {
	text := " " + label + " " + msg
	if o.width > 0 {
		style = style.Width(o.width)
	}
	fmt.Fprintln(o.out)
	fmt.Fprintln(o.out, style.Render(text))
	fmt.Fprintln(o.out)
}

// Table renders rows under headers with a light border.
func (o *IO) Table(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(o.styles.border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return o.styles.header
			}
			return o.styles.cell
		})
	fmt.Fprintln(o.out, t.String())
}
