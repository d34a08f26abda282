package main

import "github.com/theakshaypant/sched/cmd/sched/cmd"

func main() {
	cmd.Execute()
}
