package main

import (
	"github.com/jjtimmons/qdenovo/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
