package main

import "github.com/dayloop/dayloop/cmd"

func main() {
	cmd.Execute()
}
