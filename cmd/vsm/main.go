package main

import (
	"fmt"
	"os"

	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/cmd/vsm/commands"
	apperrors "github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/pkg/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		if !commands.IsReported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(apperrors.ExitCode(err))
	}
}
