package main

import "labelsync/cmd"

func main() {
	cmd.Execute()
}
