package main

import "github.com/mnason/bookgraph/cmd"

func main() {
	cmd.Execute()
}
