package main

import "go-url-shortener/cmd"

func main() {
	cmd.Execute()
}
