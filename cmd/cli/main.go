package main

import "github.com/limaJavier/eligibility/internal/command"

func main() {
	command.Execute()
}
