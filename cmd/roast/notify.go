package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// termNotifier shows alerts on stderr and asks confirmations with a
// single key press when stdin is a terminal.
type termNotifier struct {
	in     *os.File
	out    io.Writer
	assume bool
}

func newTermNotifier(assumeYes bool) *termNotifier {
	return &termNotifier{in: os.Stdin, out: os.Stderr, assume: assumeYes}
}

func (n *termNotifier) Alert(msg string) {
	fmt.Fprintf(n.out, "roast: %s\n", msg)
}

// Confirm returns true for y or Y. Without a terminal the answer is
// -yes.
func (n *termNotifier) Confirm(msg string) bool {
	if n.assume {
		return true
	}
	fd := int(n.in.Fd())
	if !term.IsTerminal(fd) {
		fmt.Fprintf(n.out, "roast: %s [y/N] n (stdin is not a terminal; pass -yes)\n", msg)
		return false
	}

	fmt.Fprintf(n.out, "%s [y/N] ", msg)
	state, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintln(n.out)
		return false
	}
	var b [1]byte
	_, err = n.in.Read(b[:])
	_ = term.Restore(fd, state)
	yes := err == nil && (b[0] == 'y' || b[0] == 'Y')
	if yes {
		fmt.Fprintln(n.out, "y")
	} else {
		fmt.Fprintln(n.out, "n")
	}
	return yes
}
