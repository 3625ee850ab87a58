// Command sitectl runs operator tasks against the site: lead exports,
// browser smoke checks and variants file validation.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
