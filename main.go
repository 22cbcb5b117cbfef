package main

import "github.com/postwarps/postwarps/cmd"

func main() {
	cmd.Execute()
}
