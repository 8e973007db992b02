package main

import (
	"os"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/interfaces/cli"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func init() {
	cli.Version = version
	cli.GitCommit = commit
	cli.BuildDate = buildDate
}

func main() {
	// Execute prints the error.
	os.Exit(cli.ExitCode(cli.Execute()))
}

//Personal.AI order the ending
