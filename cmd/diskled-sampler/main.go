// Command diskled-sampler prints the number of block I/Os in progress, one line every 5 ms.
package main

import "github.com/oshokin/disk-led/cmd/diskled-sampler/cmd"

func main() {
	cmd.Execute()
}
