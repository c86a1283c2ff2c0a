// Package main is the entry point of the docstability CLI.
package main

import (
	"github.com/elijahadejumo/DocStability/cmd"
	"github.com/elijahadejumo/DocStability/internal/contract"
	"github.com/elijahadejumo/DocStability/internal/iocache"
)

func main() {
	defer iocache.CloseStores()
	cmd.SetCacheManager(iocache.Manager)

	if err := cmd.Execute(); err != nil {
		iocache.CloseStores()
		contract.LogFatal("docstability failed", err)
	}
}
