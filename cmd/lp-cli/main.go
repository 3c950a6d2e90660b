package main

import "linkpulse-core/cmd/lp-cli/cmd"

func main() {
	cmd.Execute()
}
