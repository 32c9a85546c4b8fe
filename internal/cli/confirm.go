package cli

import (
	"bufio"
	"io"
	"strings"
)

// confirm prints the confirmation prompt and reads one line of input.
// Empty input or a y/Y prefix proceeds; anything else declines.
func confirm(in io.Reader) bool {
	out.Prompt("Proceed? [Y/n]")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		// Closed stdin counts as a decline; never mutate without an answer.
		return false
	}

	answer := strings.TrimSpace(line)
	return answer == "" || strings.HasPrefix(strings.ToLower(answer), "y")
}
