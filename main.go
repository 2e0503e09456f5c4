/*
Copyright © 2026 Micromachine
*/
package main

import (
	"log/slog"

	"micromachine.dev/dynamic-vendor/cmd"
	"micromachine.dev/dynamic-vendor/lib/utils"
)

func main() {
	slog.SetDefault(slog.New(utils.NewColorHandler()))
	cmd.Execute()
}
