package main

import "github.com/tools4digits/sysunit/cmd"

func main() {
	cmd.Execute()
}
