package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/plink"
	_ "github.com/carbocation/plink/compileinfoprint"
	"github.com/carbocation/plink/summary"
)

func main() {
	var path string
	flag.StringVar(&path, "path", "", "Base path of a PLINK .bed/.bim/.fam fileset")
	flag.Parse()

	if path == "" {
		flag.PrintDefaults()
		log.Fatalln("No path provided")
	}

	if err := run(path); err != nil {
		log.Fatalln(err)
	}
}

func run(path string) error {
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

	rows, err := summary.ForDataset(ds)
	if err != nil {
		return err
	}

	fmt.Printf("SNP\tCHR\tCM\tBP\tA1\tA2\tN_AA\tN_Aa\tN_aa\tN_MISS\tA1_FREQ\tMAF\tCALL_RATE\tHWE_Exact_P\n")
	for _, row := range rows {
		m, c := row.Marker, row.Counts
		fmt.Printf("%s\t%s\t%g\t%d\t%s\t%s\t%d\t%d\t%d\t%d\t%.4f\t%.4f\t%.4f\t%.3e\n",
			m.ID, m.Chromosome, m.Centimorgans, m.Position, m.Allele1, m.Allele2,
			c.Hom1, c.Het, c.Hom2, c.Missing,
			row.A1Frequency, row.MAF, row.CallRate, row.HWEExactP)
	}

	overall, err := summary.Overview(rows)
	if err != nil {
		return err
	}
	log.Printf("%d variants, mean call rate %.4f, median MAF %.4f\n", overall.Markers, overall.MeanCallRate, overall.MedianMAF)

	return nil
}
