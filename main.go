package main

import "github.com/Alijeyrad/uat_backend/cmd"

func main() {
	cmd.Execute()
}
