package main

import "kireiroutine/cmd/kirei/root"

func main() {
	root.Execute()
}
