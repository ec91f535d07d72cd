package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/funvibe/funseal/internal/sealcheck"
)

func main() {
	singlechecker.Main(sealcheck.Analyzer)
}
