//go:build windows

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// emit renders v as json or yaml per --format, or falls back to the
// command's own text printer.
func emit(v interface{}, text func()) error {
	switch formatFlag {
	case "", "text":
		text()
		return nil
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		out, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	default:
		return fmt.Errorf("unknown format %q", formatFlag)
	}
}
