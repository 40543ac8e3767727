package main

import "github.com/jsphweid/scoreclean/cmd"

func main() {
	cmd.Execute()
}
