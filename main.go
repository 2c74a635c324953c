package main

import "github.com/notargets/gocurvi/cmd"

func main() {
	cmd.Execute()
}
