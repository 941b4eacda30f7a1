package main

import "addon-installer/internal/cli"

func main() {
	cli.Execute()
}
