package main

import "placement-manager/cmd"

func main() {
	cmd.Execute()
}
