package main

import "github.com/iksnae/chatterbot/cmd"

func main() {
	cmd.Execute()
}
