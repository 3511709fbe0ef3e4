package main

import "github.com/notargets/boxcut/cmd"

func main() {
	cmd.Execute()
}
