package main

import (
	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/cli"
)

func main() {
	cli.Execute()
}
