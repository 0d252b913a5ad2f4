package main

import "github.com/tatianab/element-mixer/internal/cli"

func main() {
	cli.Execute()
}
