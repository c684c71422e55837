package main

import "github.com/homebuddy/apiserver/cmd"

func main() {
	cmd.Execute()
}
