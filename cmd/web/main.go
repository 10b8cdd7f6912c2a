package main

import "gatherly_backend/internal/app"

func main() {
	app.Run()
}
