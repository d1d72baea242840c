// Command tally counts words and prints them ranked by frequency, or merges
// previously written tallies. It is a thin shell over package prioritymap.
package main

import (
	"os"
)

func main() {
	a := newApp()

	if err := a.execute(a.rootCmd()); err != nil {
		os.Exit(1)
	}
}
