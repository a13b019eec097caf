package main

import "online-poll-backend/cmd"

func main() {
	cmd.Run()
}
