// Command tlps lists processes, modules, threads and heaps through the
// Toolhelp32 snapshot API.
package main

import "os"

func main() {
	os.Exit(run())
}
