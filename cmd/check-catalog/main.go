package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"relief-dispatch/common/logger"
	"relief-dispatch/internal/app"
	"relief-dispatch/internal/config"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

func main() {
	districtID := flag.String("district", "", "report a single district id instead of the whole catalog")
	flag.Parse()

	cfg := config.Load()

	zl, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "check-catalog")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx := context.Background()
	a, err := app.New(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("Failed to initialise", zap.Error(err))
	}
	defer a.Close()

	if *districtID != "" {
		r, err := app.DistrictReportFor(ctx, a.Catalog, a.Beneficiaries, *districtID)
		if err != nil {
			zl.Fatal("Catalog check failed", zap.Error(err))
		}
		fmt.Printf("%s: %s - %s - %s, %d beneficiaries, %d verified\n",
			r.DistrictID, r.Area.Governorate, r.Area.City, r.Area.District, r.Count.Total, r.Count.Verified)
		return
	}

	bar := progressbar.NewOptions64(
		int64(a.Catalog.DistrictCount()),
		progressbar.OptionSetDescription("Counting beneficiaries"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(50),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionFullWidth(),
	)

	report, err := app.CatalogReport(ctx, a.Catalog, a.Beneficiaries, func() { _ = bar.Add(1) })
	if err != nil {
		zl.Fatal("Catalog check failed", zap.Error(err))
	}
	_ = bar.Finish()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DISTRICT ID\tGOVERNORATE\tCITY\tDISTRICT\tBENEFICIARIES\tVERIFIED")
	empty := 0
	for _, r := range report {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
			r.DistrictID, r.Area.Governorate, r.Area.City, r.Area.District, r.Count.Total, r.Count.Verified)
		if r.Count.Total == 0 {
			empty++
		}
	}
	_ = w.Flush()

	fmt.Printf("\n%d governorates, %d districts, %d without beneficiaries\n",
		len(a.Catalog.Governorates()), len(report), empty)
}
