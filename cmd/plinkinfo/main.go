package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/plink"
	_ "github.com/carbocation/plink/compileinfoprint"
)

func main() {
	var path, fid, iid, marker string
	flag.StringVar(&path, "path", "", "Base path of a PLINK .bed/.bim/.fam fileset (or any one of the three files)")
	flag.StringVar(&fid, "fid", "", "Optional. Family ID of a sample to look up. Requires -iid.")
	flag.StringVar(&iid, "iid", "", "Optional. Individual ID of a sample to look up. Requires -fid.")
	flag.StringVar(&marker, "marker", "", "Optional. ID of a marker to look up.")
	flag.Parse()

	if path == "" {
		flag.PrintDefaults()
		log.Fatalln("No path provided")
	}

	if (fid == "") != (iid == "") {
		flag.PrintDefaults()
		log.Fatalln("-fid and -iid must be set together")
	}

	if err := run(path, fid, iid, marker); err != nil {
		log.Fatalln(err)
	}
}

func run(path, fid, iid, markerID string) error {
	// gs:// paths are read from Google Storage with default credentials
	var client *storage.Client
	if strings.HasPrefix(path, "gs://") {
		var err error
		client, err = storage.NewClient(context.Background())
		if err != nil {
			return err
		}
		defer client.Close()
	}

	ds, err := plink.OpenWithClient(path, client)
	if err != nil {
		return err
	}
	defer ds.Close()

	log.Println(ds.SampleCount(), "samples")
	log.Println(ds.MarkerCount(), "variants")

	s, m := -1, -1

	if fid != "" {
		if s, err = ds.SampleIndex(fid, iid); err != nil {
			return err
		}
		sample, _ := ds.Sample(s)
		fmt.Fprintf(os.Stdout, "sample\t%d\t%+v\n", s, sample)
	}

	if markerID != "" {
		if m, err = ds.MarkerIndex(markerID); err != nil {
			return err
		}
		marker, _ := ds.Marker(m)
		fmt.Fprintf(os.Stdout, "marker\t%d\t%+v\n", m, marker)
	}

	if s >= 0 && m >= 0 {
		call, err := ds.Call(s, m)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "genotype\t%s\tA2=%v\tA1=%v\n", call, call.A2(), call.A1())
	}

	return nil
}
