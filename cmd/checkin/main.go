package main

import "github.com/mcoot/assemblie-checkin/internal/cli"

func main() {
	cli.Execute()
}
