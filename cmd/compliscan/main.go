package main

import (
	"github.com/compliscan/compliscan/cmd/compliscan/cmd"
)

func main() {
	cmd.Execute()
}
