// Command stafilter checks SensorThings temporal filters and evaluates them
// against JSON records.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
