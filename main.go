package main

import "derelict/cmd"

func main() {
	cmd.Execute()
}
