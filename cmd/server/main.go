package main

import "staffbook/internal/app/server"

func main() {
	server.Run()
}
