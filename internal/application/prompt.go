package application

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/JonMunkholm/csvedit/internal/core"
)

// MenuKeyword aborts the current command when entered at an index prompt.
const MenuKeyword = "menu"

// Entry is one line of index input: either text to parse or a request to
// abort back to the menu.
type Entry struct {
	Text  string
	Abort bool
}

// Prompter performs line-oriented terminal I/O.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter reads lines from in and writes prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

func (p *Prompter) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

func (p *Prompter) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// ReadLine blocks for one line and returns it without the line terminator.
// A final line without a newline is returned normally; once input is
// exhausted the error is an *core.InputError wrapping io.EOF.
func (p *Prompter) ReadLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", &core.InputError{Message: "failed to read input", Err: err}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadEntry reads one trimmed line and tags the menu keyword as an abort.
func (p *Prompter) ReadEntry() (Entry, error) {
	line, err := p.ReadLine()
	if err != nil {
		return Entry{}, err
	}
	text := strings.TrimSpace(line)
	if text == MenuKeyword {
		return Entry{Abort: true}, nil
	}
	return Entry{Text: text}, nil
}

// Confirm reads a yes/no answer; only "y" (any case) confirms.
func (p *Prompter) Confirm() (bool, error) {
	line, err := p.ReadLine()
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(line), "y"), nil
}
