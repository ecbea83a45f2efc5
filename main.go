package main

import "github.com/reeses-sketch/WTF-is-this-site/cmd"

func main() {
	cmd.Execute()
}
