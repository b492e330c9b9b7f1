package main

import "soltoken/internal/cli"

func main() {
	cli.Execute()
}
