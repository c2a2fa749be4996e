package main

import (
	"github.com/medbridge/edgepipe/cmd"
)

func main() {
	cmd.Execute()
}
