package main

import "tinyhttpd/cmd"

func main() {
	cmd.Execute()
}
