package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// promptConfirmer asks yes/no questions on a line-oriented reader.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func newPromptConfirmer(in io.Reader, out io.Writer) *promptConfirmer {
	return &promptConfirmer{in: bufio.NewReader(in), out: out}
}

// Confirm prints prompt and returns true only for "y" or "yes".
// A read error counts as no.
func (p *promptConfirmer) Confirm(prompt string) bool {
	fmt.Fprintf(p.out, "%s\n\nContinue? [y/N]: ", prompt)

	response, err := p.in.ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

// isInteractive reports whether stdin and stdout are both terminals.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
