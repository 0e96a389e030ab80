package main

import (
	"github.com/kiranalabs/pos/cmd"
)

func main() {
	cmd.Start()
}
