package main

import (
	"os"

	arenitocmder "github.com/papercomputeco/arenito/cmd/arenito"
)

func main() {
	cmd := arenitocmder.NewArenitoCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
