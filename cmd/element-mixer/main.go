// Command element-mixer runs the game. It is the same binary as the module
// root, for go install ./cmd/... users.
package main

import "github.com/tatianab/element-mixer/internal/cli"

func main() {
	cli.Execute()
}
