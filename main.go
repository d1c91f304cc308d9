package main

import "github.com/purrie/adventure-book-sub000/cmd"

func main() {
	cmd.Execute()
}
