package main

import "clip-catalog/cmd"

func main() {
	cmd.Execute()
}
