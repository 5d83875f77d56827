//go:build !(tinygo && bootdebug)

package app

import "fredsistance/hal"

func bootScreen(hal.HAL, string) {}

func bootDiagStart(hal.HAL) {}
