package main

import cmd "fairdivisiondss/cmd/cli"

func main() {
	cmd.Execute()
}
