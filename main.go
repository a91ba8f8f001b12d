package main

import "github.com/theirongolddev/lendbook/cmd"

func main() {
	cmd.Execute()
}
