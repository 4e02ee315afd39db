package main

import "github.com/Rakesh-Biswal/reminder-service/cmd/reminder-server/cmd"

func main() {
	cmd.Execute()
}
