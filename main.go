package main

import (
	"github.com/markusressel/gpufan2go/cmd"
)

func main() {
	cmd.Execute()
}
