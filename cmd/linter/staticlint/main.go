package main

import (
	"github.com/RoGogDBD/ticket-monitor/cmd/linter"
	"golang.org/x/tools/go/analysis/singlechecker"
)

func main() {
	singlechecker.Main(linter.Analyzer)
}
