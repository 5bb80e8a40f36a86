package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"logwatch/internal/preflight"
)

type level int

const (
	levelInfo level = iota
	levelOK
	levelWarn
	levelError
)

func (l level) tag() string {
	switch l {
	case levelOK:
		return "OK"
	case levelWarn:
		return "WARN"
	case levelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func (l level) colors() text.Colors {
	switch l {
	case levelOK:
		return text.Colors{text.FgGreen}
	case levelWarn:
		return text.Colors{text.FgYellow}
	case levelError:
		return text.Colors{text.FgRed}
	default:
		return text.Colors{text.FgBlue}
	}
}

const labelWidth = 10

// statusView accumulates the sections printed by `logwatch status`.
type statusView struct {
	colorize bool
	lines    []string
}

func newStatusView(out io.Writer) *statusView {
	return &statusView{colorize: isTerminal(out)}
}

func (v *statusView) paint(colors text.Colors, s string) string {
	if !v.colorize {
		return s
	}
	return colors.Sprint(s)
}

func (v *statusView) section(title string) {
	if len(v.lines) > 0 {
		v.lines = append(v.lines, "")
	}
	heading := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	v.lines = append(v.lines,
		v.paint(text.Colors{text.FgBlue}, heading),
		v.paint(text.Colors{text.FgBlue}, strings.Repeat("-", len(heading))),
	)
}

func (v *statusView) item(label string, l level, detail string) {
	state := "[" + l.tag() + "]"
	if detail != "" {
		state += " " + detail
	}
	v.lines = append(v.lines, v.paint(l.colors(), fmt.Sprintf("  %-*s %s", labelWidth, label+":", state)))
}

func (v *statusView) checks(results []preflight.Result) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Check", "Passed", "Detail"})
	for _, r := range results {
		passed := levelOK
		if !r.Passed {
			passed = levelWarn
		}
		tw.AppendRow(table.Row{r.Name, v.paint(passed.colors(), yesNo(r.Passed)), r.Detail})
	}
	v.lines = append(v.lines, tw.Render())
}

func (v *statusView) String() string {
	return strings.Join(v.lines, "\n")
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
