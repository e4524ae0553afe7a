package main

import "github.com/guimove/reqfit/cmd"

func main() {
	cmd.Execute()
}
