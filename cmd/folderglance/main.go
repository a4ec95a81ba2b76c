package main

import "github.com/folderglance/folderglance/internal/cli"

func main() {
	cli.Execute()
}
