package main

import (
	"github.com/clipwave/clipwave/cmd"
	"github.com/clipwave/clipwave/config"
	"github.com/clipwave/clipwave/internal/cache"
	"github.com/clipwave/clipwave/log"
	"github.com/clipwave/clipwave/where"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cache.CollectGarbage(where.Cache())

	cmd.Execute()
}
