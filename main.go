package main

import "github.com/tlycrimson/bot-website-api/cmd"

func main() {
	cmd.Execute()
}
