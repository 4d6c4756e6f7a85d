package main

import "github.com/bz888/nopickles/cmd"

func main() {
	cmd.Execute()
}
