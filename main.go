package main

import "github.com/jsphweid/soundevents/cmd"

func main() {
	cmd.Execute()
}
