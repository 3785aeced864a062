package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/peterh/liner"
	"golang.org/x/term"
)

// LineReader reads one answer after printing prompt.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// IO bundles the prompt source and the styled output sink.
type IO struct {
	out         io.Writer
	lines       LineReader
	closer      io.Closer
	interactive bool
	width       int
	styles      styles
}

// New returns an IO reading answers line by line from in. Tests use it with
// a strings.Reader of scripted answers.
func New(in io.Reader, out io.Writer, interactive bool) *IO {
	o := &IO{
		out:         out,
		lines:       &bufferedLines{r: bufio.NewReader(in), out: out},
		interactive: interactive,
	}
	o.styles = newStyles(renderer(out))
	return o
}

// Stdio wires the process terminal. Line editing via liner is only enabled
// when stdin is a TTY; piped input falls back to buffered reads.
func Stdio(interactive bool) *IO {
	o := New(os.Stdin, os.Stdout, interactive)
	if interactive && term.IsTerminal(int(os.Stdin.Fd())) {
		state := liner.NewLiner()
		state.SetCtrlCAborts(true)
		o.lines = &linerLines{state: state}
		o.closer = state
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			o.width = w
		}
	}
	return o
}

func renderer(out io.Writer) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(out)
	if os.Getenv("NO_COLOR") != "" {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// Close releases the terminal when line editing was enabled.
func (o *IO) Close() error {
	if o.closer == nil {
		return nil
	}
	return o.closer.Close()
}

// Interactive reports whether prompts wait for the operator.
func (o *IO) Interactive() bool { return o.interactive }

// Out is the writer all output goes to.
func (o *IO) Out() io.Writer { return o.out }

type bufferedLines struct {
	r   *bufio.Reader
	out io.Writer
}

func (b *bufferedLines) ReadLine(prompt string) (string, error) {
	fmt.Fprint(b.out, prompt)
	line, err := b.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			fmt.Fprintln(b.out)
			return strings.TrimRight(line, "\r\n"), nil
		}
		fmt.Fprintln(b.out)
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

type linerLines struct {
	state *liner.State
}

func (l *linerLines) ReadLine(prompt string) (string, error) {
	ans, err := l.state.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		_ = l.state.Close()
		fmt.Fprintln(os.Stderr, "\nAborted.")
		os.Exit(130)
	}
	return ans, err
}
