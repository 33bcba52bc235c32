package main

import "github.com/alexiusacademia/cbeam/cmd"

func main() {
	cmd.Execute()
}
