package main

import "github.com/tansive/archsrv/internal/cli"

func main() {
	cli.Execute()
}
