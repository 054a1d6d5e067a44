package main

import "videopoker-server/internal/cli"

func main() {
	cli.Execute()
}
