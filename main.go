package main

import "storefront-api/commands"

func main() {
	commands.Execute()
}
