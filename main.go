package main

import "github.com/KaramelBytes/carstats/cmd"

func main() {
	cmd.Execute()
}
