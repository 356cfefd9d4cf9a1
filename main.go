package main

import "clubportal/internal/app"

// @title           Club Portal API
// @version         1.0
// @description     Passwordless email-code authentication for the club website.
// @BasePath        /
func main() {
	app.Run()
}
