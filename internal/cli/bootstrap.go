// Package cli provides CLI commands for the CRM application.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// NewContext creates the context a CLI command runs its service calls with.
func NewContext() context.Context {
	return context.Background()
}

// confirm asks a yes/no question on out and reads the answer from in.
// Anything other than y or yes counts as no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
