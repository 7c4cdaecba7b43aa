package main

import "github.com/cansyan/dock/cmd"

func main() {
	cmd.Execute()
}
