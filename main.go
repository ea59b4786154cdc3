package main

import "flowtime-logger.com/flowtime-logger/cmd"

func main() {
	cmd.Execute()
}
