package main

import "github.com/iksnae/osa-monitor/cmd"

func main() {
	cmd.Execute()
}
