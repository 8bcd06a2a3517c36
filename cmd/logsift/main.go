// Logsift - multi-line service log ingestion and query tool.
//
// Logsift reconstructs discrete timestamped entries from free-form log
// files, stores them in SQLite, and answers time-windowed queries through a
// small boolean filter language.
package main

import (
	"os"

	"logsift/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
