package main

import (
	"os"
	"strings"

	"commentsapi/service"
)

func main() {
	args := os.Args[1:]
	if len(args) > 0 {
		args[0] = strings.ToLower(args[0])
	}
	os.Exit(service.HandleCommand(args))
}
