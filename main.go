package main

import "github.com/Tiliavir/typed-time-tracker/cmd"

func main() {
	cmd.Execute()
}
