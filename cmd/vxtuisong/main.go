package main

import (
	"os"

	"github.com/RRRwang/vxtuisong/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
