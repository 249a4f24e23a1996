package main

import (
	api "Yatube"
)

func main() {
	api.Run()
}
