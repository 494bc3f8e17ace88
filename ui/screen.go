package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/labstack/gommon/color"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"
)

const clearSequence = "\033[H\033[2J"

// Screen renders boxes, tables and one-line status messages.
type Screen struct {
	out   io.Writer
	color *color.Color
	tty   bool
}

// NewScreen renders to out. Colors and screen clearing are only enabled when
// out is a terminal.
func NewScreen(out io.Writer) *Screen {
	c := color.New()
	c.SetOutput(out)
	tty := false
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		tty = true
	} else {
		c.Disable()
	}
	return &Screen{out: out, color: c, tty: tty}
}

func (s *Screen) Out() io.Writer {
	return s.out
}

func (s *Screen) Color() *color.Color {
	return s.color
}

func (s *Screen) Clear() {
	if s.tty {
		fmt.Fprint(s.out, clearSequence)
	}
}

// Box draws title above lines inside a single bordered cell column.
func (s *Screen) Box(title string, lines ...string) {
	table := tablewriter.NewWriter(s.out)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{title})
	for _, line := range lines {
		table.Append([]string{line})
	}
	table.Render()
}

func (s *Screen) Table(header []string, rows [][]string) {
	table := tablewriter.NewWriter(s.out)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetRowLine(true)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader(header)
	table.AppendBulk(rows)
	table.Render()
}

func (s *Screen) Println(a ...interface{}) {
	fmt.Fprintln(s.out, a...)
}

func (s *Screen) Success(msg string) {
	fmt.Fprintf(s.out, "%s %s\n", s.color.Green("✔"), s.color.Green(msg))
}

func (s *Screen) Fail(msg string) {
	fmt.Fprintf(s.out, "%s %s\n", s.color.Red("✖"), s.color.Red(msg))
}

func (s *Screen) Warn(msg string) {
	fmt.Fprintf(s.out, "%s %s\n", s.color.Yellow("⚠"), s.color.Yellow(msg))
}

func (s *Screen) Info(msg string) {
	fmt.Fprintf(s.out, "%s %s\n", s.color.Blue("ℹ"), msg)
}

// Progress announces a running step, e.g. "로그인 중...".
func (s *Screen) Progress(msg string) {
	fmt.Fprintf(s.out, "%s %s\n", s.color.Cyan("…"), msg)
}
