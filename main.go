package main

import "github.com/tubeget/tubeget/cmd"

func main() {
	cmd.Execute()
}
