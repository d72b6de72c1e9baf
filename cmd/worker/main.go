package main

import (
	"log"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: worker sankey|dot <path> ...")
	}

	var err error
	switch os.Args[1] {
	case "sankey":
		err = RunSankey(os.Args[2:], os.Stdout)
	case "dot":
		err = RunDOT(os.Args[2:])
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
	if err != nil {
		log.Fatal(err)
	}
}
