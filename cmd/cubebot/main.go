// cubebot drives a two-motor Rubik's cube robot from the command line.
package main

import (
	"github.com/SeamusWaldron/cubebot/internal/cli"
)

func main() {
	cli.Execute()
}
