//go:build !windows

package main

import (
	"fmt"
	"os"
)

func run() int {
	fmt.Fprintln(os.Stderr, "tlps only works on Windows")
	return 1
}
