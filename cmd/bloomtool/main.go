package main

import (
	"os"

	"github.com/tedwangl/go-bloom/cmd/bloomtool/commands"
)

// version 构建时通过 -ldflags "-X main.version=..." 注入
var version = "dev"

func main() {
	tool := commands.NewTool(version, os.ExpandEnv("$HOME/.bloomtool/config.yaml"))
	os.Exit(tool.Execute())
}
