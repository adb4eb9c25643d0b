package main

import "github.com/codehive-india/showcase/app/showcase/cli/cmd"

func main() {
	cmd.Execute()
}
