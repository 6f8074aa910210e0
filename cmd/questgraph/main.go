// Command questgraph loads a DefaultQuests directory tree and reports
// importance scores over its prerequisite graph.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
