package main

import "github.com/PauMatas/DPA-visual-analytics-tool/cmd"

func main() {
	cmd.Execute()
}
