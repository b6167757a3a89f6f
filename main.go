// main.go
package main

import (
	"ledger/cmd"
)

func main() {
	cmd.RegisterCommands(
		cmd.NewConsumeCommand(),
		cmd.NewSubmitCommand(),
		cmd.NewDemoCommand(),
	)

	cmd.Execute()
}
