package main

import "github.com/Eamateli/aws-deploy-assistant-sub002/cmd"

func main() {
	cmd.Execute()
}
