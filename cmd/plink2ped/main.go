package main

import (
	"flag"
	"log"

	"github.com/carbocation/plink"
	_ "github.com/carbocation/plink/compileinfoprint"
	"github.com/carbocation/plink/ped"
)

func main() {
	var path, out string
	flag.StringVar(&path, "path", "", "Base path of a PLINK .bed/.bim/.fam fileset")
	flag.StringVar(&out, "out", "", "Output prefix. Writes <out>.ped and <out>.map")
	flag.Parse()

	if path == "" || out == "" {
		flag.PrintDefaults()
		log.Fatalln("-path and -out are required")
	}

	out, err := plink.ExpandHome(out)
	if err != nil {
		log.Fatalln(err)
	}

	ds, err := plink.Open(path)
	if err != nil {
		log.Fatalln(err)
	}
	defer ds.Close()

	log.Printf("Exporting %d samples x %d variants to %s\n", ds.SampleCount(), ds.MarkerCount(), out)

	if err := ped.Export(ds, out); err != nil {
		log.Fatalln(err)
	}

	log.Println("Done")
}
