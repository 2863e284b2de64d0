package main

import "app-webserver/cmd"

func main() {
	cmd.Execute()
}
