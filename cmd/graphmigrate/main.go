package main

import "github.com/jd09-test/product-model/internal/cli"

func main() {
	cli.Execute()
}
