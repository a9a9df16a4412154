package main

import "github.com/solvenote/solvenote/cmd"

func main() {
	cmd.Execute()
}
