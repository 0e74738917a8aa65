package main

import (
	"github.com/deploymenttheory/go-encdetect/cmd"
)

func main() {
	cmd.Execute()
}
