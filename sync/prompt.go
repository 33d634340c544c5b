package sync

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompt asks "Is this ok [Y/n]" until it reads y, n or an empty line.
type Prompt struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: bufio.NewReader(in), out: out}
}

func (prompt *Prompt) Confirm() (bool, error) {
	for {
		fmt.Fprint(prompt.out, "Is this ok [Y/n]: ")

		line, err := prompt.in.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return false, err
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "n":
			return false, nil
		case "y", "":
			return true, nil
		}
	}
}
