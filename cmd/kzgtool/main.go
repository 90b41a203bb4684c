// the program kzgtool creates testing trusted setups, computes blob commitments and aggregate proofs
// and verifies them.
// Usage: kzgtool <setup|commit|prove|verify> [flags] [blob files]
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/cockroachdb/errors"
)

type command struct {
	usage string
	run   func(args []string) error
}

var commands = map[string]command{
	"setup":  {usage: "generates an insecure trusted setup for testing from a seed", run: runSetup},
	"commit": {usage: "prints the commitments of the given blob files", run: runCommit},
	"prove":  {usage: "prints the aggregate proof of the given blob files", run: runProve},
	"verify": {usage: "verifies an aggregate proof of the given blob files and commitments", run: runVerify},
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: kzgtool <command> [flags] [blob files]\n\nCommands:\n")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %-8s %s\n", name, commands[name].usage)
	}
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	cmd, exists := commands[os.Args[1]]
	if !exists {
		printUsage()
		os.Exit(2)
	}

	if err := cmd.run(os.Args[2:]); err != nil {
		if errors.Is(err, errVerificationFailed) {
			fmt.Println("false")
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
