package main

import "github.com/Azure/aca-recipe/cmd"

func main() {
	cmd.Execute()
}
