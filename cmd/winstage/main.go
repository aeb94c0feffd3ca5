package main

import (
	"github.com/winstage/winstage/internal/cmd/root"
)

func main() {
	root.Execute()
}
