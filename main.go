/*
Copyright © 2025 Daniel Soto Pino
*/
package main

import (
	"os"
	"strings"

	"github.com/danielsotopino/simple-taskmanager/cmd"
	"github.com/danielsotopino/simple-taskmanager/internal/logger"
)

func main() {
	logger.SetBasePath("simple-taskmanager")
	if len(os.Args) > 1 {
		logger.SetCommand(strings.Join(os.Args[1:], " "))
	}
	defer logger.HandlePanic()

	cmd.Execute()
}
