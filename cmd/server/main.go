package main

import (
	"github.com/parallax-vis/parallax/internal/server"
	"github.com/parallax-vis/parallax/internal/util"
	"github.com/parallax-vis/parallax/pkg/logger"
	"github.com/parallax-vis/parallax/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleBackend := console.NewConsoleBackend(console.ConsoleBackendParams{
		Debug: debug,
	})
	logger.Init(consoleBackend)

	server.Init()
}
