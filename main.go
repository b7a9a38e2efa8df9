// main.go
//
// Entry point for the gamehub binary. See internal/cli for the commands.

package main

import "github.com/robalobadob/gamehub/internal/cli"

func main() {
	cli.Execute()
}
