// Command workshopdex browses a workshop backend from the terminal and prints JSON
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, errorMessage(err))
		os.Exit(exitCode(err))
	}
}
