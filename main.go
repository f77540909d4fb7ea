package main

import "github.com/kozaktomas/face-bench/cmd"

func main() {
	cmd.Execute()
}
