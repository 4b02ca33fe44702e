package main

import (
	"github.com/kavolang/kavo/cmd"
)

func main() {
	cmd.Execute()
}
