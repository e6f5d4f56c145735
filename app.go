package main

import "github.com/masmgr/gitwork/cmd"

func main() {
	cmd.Run()
}
