// eob-dbinit provisions the application user of a MongoDB deployment.
package main

import (
	"github.com/charopevez/eob-dbinit/cmd"
)

func main() {
	cmd.Run()
}
