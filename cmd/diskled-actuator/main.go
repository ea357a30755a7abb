// Command diskled-actuator reads I/O counts from stdin and drives the disk activity LED.
package main

import "github.com/oshokin/disk-led/cmd/diskled-actuator/cmd"

func main() {
	cmd.Execute()
}
