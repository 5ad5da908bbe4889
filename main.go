// Package main is the entry point for the mtgprice CLI application.
// It provides Magic: The Gathering card price lookups backed by a Postgres warehouse.
package main

import (
	"github.com/applewjr/mtg-price-tracker/cmd"
)

// main is the entry point for the mtgprice CLI application.
// It initializes and executes the command-line interface.
func main() {
	cmd.Execute()
}
