package main

import "github.com/folospace/go-mysql-dataset/internal/cli"

func main() {
	cli.Execute()
}
