package main

import "github.com/goughy12/Get-GithubRelease/cmd"

func main() {
	cmd.Execute()
}
