package main

import "updraft/cmd"

func main() {
	cmd.Run()
}
