package main

import "github.com/Yates-Labs/bikeshare/cmd"

func main() {
	cmd.Execute()
}
