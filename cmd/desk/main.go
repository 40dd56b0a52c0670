package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"main/internal/algoexec"
	"main/internal/booking"
	"main/internal/execution"
	"main/internal/gui"
	"main/internal/history"
	"main/internal/ingest"
	"main/internal/inquiry"
	"main/internal/marketdata"
	"main/internal/obs"
	"main/internal/ops"
	"main/internal/position"
	"main/internal/pricing"
	"main/internal/refdata"
	"main/internal/risk"
	"main/internal/schema"
	"main/internal/streaming"
	"main/pkg/conn"

	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"
)

const guiFileName = "gui.txt"

func main() {
	if err := run(); err != nil {
		logs.Errorf("desk: %v", err)
		os.Exit(1)
	}
}

func run() error {
	configFlag := flag.String("config", "", "path to JSON config file")
	dataDirFlag := flag.String("data-dir", "", "input record directory (overrides config)")
	outDirFlag := flag.String("out-dir", "", "output directory (overrides config)")
	paceFlag := flag.Float64("pace", 0, "records per second during replay, 0 for unpaced (overrides config)")
	snapshotFlag := flag.String("snapshot", "", "position snapshot path (overrides config)")
	profileFlag := flag.String("profile", "", "pyroscope server address (optional)")
	followFlag := flag.Bool("follow", false, "tail the input files until interrupted instead of replaying once")
	flag.Parse()

	cfg, err := ops.Load(*configFlag)
	if err != nil {
		return err
	}
	if dir := strings.TrimSpace(*dataDirFlag); dir != "" {
		cfg.DataDir = dir
	}
	if dir := strings.TrimSpace(*outDirFlag); dir != "" {
		cfg.OutDir = dir
	}
	if *paceFlag > 0 {
		cfg.PaceRecordsPerSec = *paceFlag
	}
	if path := strings.TrimSpace(*snapshotFlag); path != "" {
		cfg.SnapshotPath = path
	}

	if addr := strings.TrimSpace(*profileFlag); addr != "" {
		profiler, err := obs.StartProfiler(addr, "desk")
		if err != nil {
			return fmt.Errorf("start profiler: %w", err)
		}
		defer func() { _ = profiler.Stop() }()
	}

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-sys.Shutdown()
		cancel()
	}()

	// Historical sink: append files, plus the database when configured.
	fileSink := history.NewFileSink(cfg.OutDir)
	defer func() { _ = fileSink.Close() }()
	var sink history.Sink = fileSink
	if cfg.Postgres != nil {
		client, err := conn.New(conn.Option{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			Database: cfg.Postgres.Database,
			SSLMode:  cfg.Postgres.SSLMode,
		})
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer func() { _ = client.Close() }()
		dbSink, err := history.NewDBSink(client)
		if err != nil {
			return fmt.Errorf("prepare db sink: %w", err)
		}
		sink = history.TeeSink{fileSink, dbSink}
	}

	// Services.
	pricingService := pricing.New()
	algoStreamingService := streaming.NewAlgo().WithLotSize(cfg.LotSize)
	streamingService := streaming.New()
	marketDataService := marketdata.New()
	algoExecService := algoexec.New()
	executionService := execution.New()
	bookingService := booking.New(cfg.Books)
	positionService := position.New()
	riskService := risk.New()
	inquiryService := inquiry.New()
	inquiryService.SetQuotePrice(cfg.QuotePrice)

	var guiService *gui.Service
	if !cfg.DisableGUI {
		guiOut, err := history.OpenAppend(filepath.Join(cfg.OutDir, guiFileName))
		if err != nil {
			return err
		}
		defer func() { _ = guiOut.Close() }()
		guiService = gui.New(guiOut, cfg.GUIThrottle)
	}

	histPosition := history.New[schema.Position](schema.PersistPosition, sink)
	histRisk := history.New[schema.PV01](schema.PersistRisk, sink)
	histExecution := history.New[schema.ExecutionOrder](schema.PersistExecution, sink)
	histStreaming := history.New[schema.PriceStream](schema.PersistStreaming, sink)
	histInquiry := history.New[schema.Inquiry](schema.PersistInquiry, sink)

	// Listener graph: each upstream service announces into the next stage.
	pricingService.AddListener(algoStreamingService.Listener())
	if guiService != nil {
		pricingService.AddListener(guiService.Listener())
	}
	algoStreamingService.AddListener(streamingService.Listener())
	streamingService.AddListener(histStreaming.Listener())
	marketDataService.AddListener(algoExecService.Listener())
	algoExecService.AddListener(executionService.Listener())
	executionService.AddListener(bookingService.Listener())
	executionService.AddListener(histExecution.Listener())
	bookingService.AddListener(positionService.Listener())
	positionService.AddListener(riskService.Listener())
	positionService.AddListener(histPosition.Listener())
	riskService.AddListener(histRisk.Listener())
	inquiryService.AddListener(histInquiry.Listener())

	metrics := obs.NewMetrics()
	pricingService.AddListener(obs.NewCountingListener[schema.Price](metrics, obs.StagePrice))
	marketDataService.AddListener(obs.NewCountingListener[schema.OrderBook](metrics, obs.StageBookSnapshot))
	executionService.AddListener(obs.NewCountingListener[schema.ExecutionOrder](metrics, obs.StageExecution))
	bookingService.AddListener(obs.NewCountingListener[schema.Trade](metrics, obs.StageTrade))
	positionService.AddListener(obs.NewCountingListener[schema.Position](metrics, obs.StagePosition))
	riskService.AddListener(obs.NewCountingListener[schema.PV01](metrics, obs.StageRisk))
	streamingService.AddListener(obs.NewCountingListener[schema.PriceStream](metrics, obs.StageQuote))
	inquiryService.AddListener(obs.NewCountingListener[schema.Inquiry](metrics, obs.StageInquiry))

	// Replay the record files in pipeline order. One shared reader paces
	// and serializes delivery across all four streams.
	reader := ingest.NewReader(cfg.PaceRecordsPerSec)
	if *followFlag {
		reader.Follow()
	}

	priceConnector := ingest.NewPriceConnector(pricingService, reader)
	marketDataConnector := ingest.NewMarketDataConnector(marketDataService, reader)
	tradeConnector := ingest.NewTradeConnector(bookingService, reader)
	inquiryConnector := ingest.NewInquiryConnector(inquiryService, reader)

	feeds := []struct {
		name string
		run  func(context.Context, io.Reader) error
	}{
		{"prices.txt", func(ctx context.Context, src io.Reader) error { return priceConnector.Subscribe(ctx, src) }},
		{"marketdata.txt", func(ctx context.Context, src io.Reader) error { return marketDataConnector.Subscribe(ctx, src) }},
		{"trades.txt", func(ctx context.Context, src io.Reader) error { return tradeConnector.Subscribe(ctx, src) }},
		{"inquiries.txt", func(ctx context.Context, src io.Reader) error { return inquiryConnector.Subscribe(ctx, src) }},
	}

	replay := func(name string, run func(context.Context, io.Reader) error) error {
		path := filepath.Join(cfg.DataDir, name)
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		logs.Infof("replaying %s", path)
		return run(ctx, f)
	}

	if *followFlag {
		// Tail every feed until the shutdown signal cancels the context.
		var wg sync.WaitGroup
		errCh := make(chan error, len(feeds))
		for _, feed := range feeds {
			wg.Add(1)
			go func(name string, run func(context.Context, io.Reader) error) {
				defer wg.Done()
				if err := replay(name, run); err != nil && !errors.Is(err, context.Canceled) {
					errCh <- fmt.Errorf("%s: %w", name, err)
					cancel()
				}
			}(feed.name, feed.run)
		}
		wg.Wait()
		close(errCh)
		if err := <-errCh; err != nil {
			return err
		}
	} else {
		for _, feed := range feeds {
			if err := replay(feed.name, feed.run); err != nil {
				return err
			}
		}
	}

	if err := position.WriteSnapshot(cfg.SnapshotPath, positionService.Snapshot()); err != nil {
		return fmt.Errorf("write position snapshot: %w", err)
	}
	logs.Infof("position snapshot written to %s", cfg.SnapshotPath)

	for _, sector := range []schema.BucketedSector{refdata.FrontEnd(), refdata.Belly(), refdata.LongEnd()} {
		pv := riskService.BucketedRisk(sector)
		logs.Infof("bucketed risk %s: %.2f", sector.Name, pv.Value)
	}

	for _, stage := range []obs.Stage{
		obs.StagePrice, obs.StageBookSnapshot, obs.StageExecution, obs.StageTrade,
		obs.StagePosition, obs.StageRisk, obs.StageQuote, obs.StageInquiry,
	} {
		logs.Infof("processed %d %s events", metrics.Count(stage), stage)
	}
	if guiService != nil {
		if dropped := guiService.Dropped(); dropped > 0 {
			logs.Infof("gui throttle dropped %d updates", dropped)
		}
	}
	return nil
}
