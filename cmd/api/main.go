// Command api serves the loan origination intake HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/ayo6706/loan-origination/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "loan-origination: %v\n", err)
		os.Exit(1)
	}
}
