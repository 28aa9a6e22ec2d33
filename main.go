// main is the entry point for the searchpulse CLI.
package main

import (
	"github.com/searchpulse/searchpulse/cmd"
	"github.com/searchpulse/searchpulse/internal/contract"
	"github.com/searchpulse/searchpulse/internal/runstore"
)

func main() {
	defer runstore.CloseStore()

	cmd.SetStoreManager(runstore.Manager)
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Cannot run searchpulse", err)
	}
}
