package main

import (
	"fmt"
	"os"

	"github.com/dosanma1/forge-native/internal/cmd"
	"github.com/dosanma1/forge-native/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
