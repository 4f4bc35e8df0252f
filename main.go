package main

import "github.com/KaramelBytes/arffkit/cmd"

func main() {
	cmd.Execute()
}
