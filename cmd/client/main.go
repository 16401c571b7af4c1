package main

import "stockroom/cmd/client/cmd"

func main() {
	cmd.Execute()
}
