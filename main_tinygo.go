//go:build tinygo

package main

import (
	"fredsistance/app"
	"fredsistance/hal"
)

func main() {
	app.Run(hal.New(), app.Config{})
}
