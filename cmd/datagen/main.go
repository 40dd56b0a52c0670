package main

import (
	"flag"
	"os"
	"path/filepath"

	"main/internal/mdg"

	"github.com/yanun0323/logs"
)

func main() {
	if err := run(); err != nil {
		logs.Errorf("datagen: %v", err)
		os.Exit(1)
	}
}

func run() error {
	dirFlag := flag.String("dir", "data", "output directory for generated record files")
	pricesFlag := flag.Int("prices", 10000, "price records per product")
	snapshotsFlag := flag.Int("snapshots", 1000, "order book snapshots per product")
	tradesFlag := flag.Int("trades", 10, "trades per product")
	inquiriesFlag := flag.Int("inquiries", 10, "inquiries per product")
	flag.Parse()

	if err := os.MkdirAll(*dirFlag, 0o755); err != nil {
		return err
	}

	write := func(name string, fn func(f *os.File) error) error {
		path := filepath.Join(*dirFlag, name)
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := fn(f); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		logs.Infof("wrote %s", path)
		return nil
	}

	if err := write("prices.txt", func(f *os.File) error {
		return mdg.WritePrices(f, *pricesFlag)
	}); err != nil {
		return err
	}
	if err := write("marketdata.txt", func(f *os.File) error {
		return mdg.WriteMarketData(f, *snapshotsFlag)
	}); err != nil {
		return err
	}
	if err := write("trades.txt", func(f *os.File) error {
		return mdg.WriteTrades(f, *tradesFlag, nil)
	}); err != nil {
		return err
	}
	return write("inquiries.txt", func(f *os.File) error {
		return mdg.WriteInquiries(f, *inquiriesFlag)
	})
}
