package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Console is the shared line reader and writer. It also answers confirmation prompts,
// so prompts and commands come from the same input stream.
// maxLineBytes bounds one input line; pasted documents can exceed bufio's default.
const maxLineBytes = 1 << 20

type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &Console{in: scanner, out: out}
}

// ReadLine returns false at end of input or on a read error; Err tells them apart.
func (c *Console) ReadLine(prompt string) (string, bool) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		return "", false
	}
	return c.in.Text(), true
}

// Err is nil after a clean end of input.
func (c *Console) Err() error {
	return c.in.Err()
}

// Confirm accepts "y" or "yes"; anything else, including end of input, declines.
func (c *Console) Confirm(prompt string) bool {
	answer, ok := c.ReadLine(prompt + " [y/N]: ")
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func (c *Console) Println(a ...interface{}) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Fprintf(c.out, format, a...)
}
