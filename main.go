package main

import (
	"github.com/s0up4200/m3client/cmd"
)

func main() {
	cmd.Execute()
}
