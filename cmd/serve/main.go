package main

import "autovalue/internal/app"

func main() {
	app.MustRunApp()
}
