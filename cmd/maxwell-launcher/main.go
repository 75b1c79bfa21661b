package main

import (
	launcher "github.com/datazip-inc/maxwell-launcher"
)

func main() {
	launcher.Run()
}
