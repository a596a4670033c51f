// Command sprintctl schedules a sprint's work items across executors'
// half-day capacity and renders the result as text and JSON.
package main

import "github.com/ewerton255/sprintctl/cmd"

func main() {
	cmd.Execute()
}
