package main

import "cehpoint/site_backend/internal/app"

func main() {
	app.Run()
}
