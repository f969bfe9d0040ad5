package main

import (
	"github.com/sidkik/notion-mirror/cmd"
	"github.com/sidkik/notion-mirror/cmd/util"
)

func main() {
	defer util.HandlePanic()
	cmd.Execute()
}
