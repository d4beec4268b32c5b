package main

import (
	"os"

	"github.com/avellar-dev/posture-coach/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
