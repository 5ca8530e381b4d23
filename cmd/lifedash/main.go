package main

import "lifedash/cmd/lifedash/root"

func main() {
	root.Execute()
}
