package main

import (
	"fmt"
	"os"
)

func main() {
	a := newApp()
	err := a.execute(a.rootCmd())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
