// Command eventid runs the event id checker standalone or as a vet tool:
//
//	eventid ./...
//	go vet -vettool=$(which eventid) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/sirkon/eventid"
)

func main() {
	singlechecker.Main(eventid.Analyzer)
}
