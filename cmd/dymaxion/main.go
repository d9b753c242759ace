// Command dymaxion plays the Dymaxion map puzzle from the terminal.
package main

import "github.com/aiham/dymaxion/internal/cli"

func main() {
	cli.Execute()
}
