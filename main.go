package main

import "github.com/pders01/factorlab/cmd"

func main() {
	cmd.Execute()
}
