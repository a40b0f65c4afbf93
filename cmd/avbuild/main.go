package main

import "github.com/avbuild/avbuild/cmd/avbuild/internal"

func main() {
	internal.Execute()
}
