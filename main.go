package main

import "warpanel/cmd"

func main() {
	cmd.Execute()
}
