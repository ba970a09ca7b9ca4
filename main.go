package main

import "github.com/rickcollette/vextlang/cmd"

var version = "v0.2.0"

func main() {
	cmd.Execute(version)
}
