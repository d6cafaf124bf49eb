package main

import "github.com/jsphweid/matchalign/cmd"

func main() {
	cmd.Execute()
}
