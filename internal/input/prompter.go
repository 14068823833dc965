// Package input reads interactive answers and credentials from the user.
package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter asks the user for a line of text or a secret.
type Prompter interface {
	// ReadLine prints prompt and returns the answer without its line ending
	ReadLine(prompt string) (string, error)

	// ReadPassword prints prompt and reads an answer without echoing it
	ReadPassword(prompt string) (string, error)
}

// TerminalPrompter reads from stdin and writes prompts to stdout.
type TerminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

// NewTerminalPrompter creates a prompter bound to the process terminal
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stdout,
		fd:  int(os.Stdin.Fd()),
	}
}

// ReadLine reads one line from stdin
func (p *TerminalPrompter) ReadLine(prompt string) (string, error) {
	_, _ = fmt.Fprint(p.out, prompt)
	return readLine(p.in)
}

// ReadPassword reads a secret with echo disabled. When stdin is not a
// terminal (piped input) the line is read as-is.
func (p *TerminalPrompter) ReadPassword(prompt string) (string, error) {
	_, _ = fmt.Fprint(p.out, prompt)
	if !term.IsTerminal(p.fd) {
		return readLine(p.in)
	}
	secret, err := term.ReadPassword(p.fd)
	_, _ = fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(secret), nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// StringPrompter answers prompts from a fixed list, for tests.
// Lines and passwords are consumed from the same queue in call order.
type StringPrompter struct {
	answers []string
	index   int
	Prompts []string
}

// NewStringPrompter creates a prompter that replays answers in order
func NewStringPrompter(answers ...string) *StringPrompter {
	return &StringPrompter{answers: answers}
}

// ReadLine returns the next answer
func (p *StringPrompter) ReadLine(prompt string) (string, error) {
	return p.next(prompt)
}

// ReadPassword returns the next answer
func (p *StringPrompter) ReadPassword(prompt string) (string, error) {
	return p.next(prompt)
}

func (p *StringPrompter) next(prompt string) (string, error) {
	p.Prompts = append(p.Prompts, prompt)
	if p.index >= len(p.answers) {
		return "", io.EOF
	}
	answer := p.answers[p.index]
	p.index++
	return answer, nil
}
