package main

import "github.com/cabify/techdocs/cmd"

func main() {
	cmd.Execute()
}
