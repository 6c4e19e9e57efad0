package main

import "github.com/Luasgl/P2AULA2/cli"

func main() {
	cli.Execute() // serve by default; see "padroniza --help"
}
