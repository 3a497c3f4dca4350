// Command play runs a two-player game in the terminal, both sides taking
// turns at the same keyboard.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newSession(os.Stdin, os.Stdout).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
