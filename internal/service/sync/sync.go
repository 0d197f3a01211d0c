package sync

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"bms-board/internal/storage"
)

// allEpoch is where BMS history starts; "all" mode resyncs from here.
const allEpoch = "2024-08-01"

const detailFetchLimit = 4

type Store interface {
	UpsertOrders(ctx context.Context, orders []storage.OrderRecord) (int, error)
}

// Result tracks separate counters per outcome, so a partially failed run
// still reports what it did manage to import.
type Result struct {
	Listed   int      `json:"listed"`
	Fetched  int      `json:"fetched"`
	Upserted int      `json:"upserted"`
	Errors   []string `json:"errors,omitempty"`
}

type Service struct {
	log    *slog.Logger
	client *Client
	store  Store
}

func NewService(log *slog.Logger, client *Client, store Store) *Service {
	return &Service{log: log, client: client, store: store}
}

func startDateForMode(mode string, now time.Time) (string, error) {
	switch mode {
	case "1week":
		return now.AddDate(0, 0, -7).Format("2006-01-02"), nil
	case "3months":
		return now.AddDate(0, 0, -90).Format("2006-01-02"), nil
	case "all":
		return allEpoch, nil
	}
	return "", fmt.Errorf("unknown sync mode %q (1week, 3months, all)", mode)
}

// Run lists the store's orders for the mode's date range, pulls each detail
// and upserts the flattened rows. Individual detail failures are counted,
// not fatal.
func (s *Service) Run(ctx context.Context, mode string) (Result, error) {
	const op = "service.sync.Run"

	start, err := startDateForMode(mode, time.Now())
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}
	end := time.Now().Format("2006-01-02")

	log := s.log.With(slog.String("op", op), slog.String("mode", mode))
	log.Info("sync started", slog.String("start", start), slog.String("end", end))

	list, err := s.client.OrderList(ctx, start, end)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}

	result := Result{Listed: len(list)}

	var (
		mu      sync.Mutex
		records []storage.OrderRecord
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(detailFetchLimit)

	for _, item := range list {
		g.Go(func() error {
			detail, err := s.client.OrderDetail(gCtx, item.ID.String())
			if err != nil {
				log.Warn("detail fetch failed", slog.String("code", item.Code), slog.String("error", err.Error()))
				mu.Lock()
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", item.Code, err))
				mu.Unlock()
				return nil
			}

			rec := FlattenDetail(detail)

			mu.Lock()
			records = append(records, rec)
			result.Fetched++
			if result.Fetched%25 == 0 {
				log.Info("sync progress", slog.Int("fetched", result.Fetched), slog.Int("total", len(list)))
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, fmt.Errorf("%s: %w", op, err)
	}

	upserted, err := s.store.UpsertOrders(ctx, records)
	if err != nil {
		return result, fmt.Errorf("%s: %w", op, err)
	}
	result.Upserted = upserted

	log.Info("sync finished",
		slog.Int("listed", result.Listed),
		slog.Int("fetched", result.Fetched),
		slog.Int("upserted", result.Upserted),
		slog.Int("errors", len(result.Errors)),
	)

	return result, nil
}

// StartScheduler runs the sync on a cron spec. An empty spec disables it.
func StartScheduler(log *slog.Logger, svc *Service, spec, mode string) (*cron.Cron, error) {
	if spec == "" {
		return nil, nil
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		if _, err := svc.Run(ctx, mode); err != nil {
			log.Error("scheduled sync failed", slog.String("error", err.Error()))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("sync scheduler: %w", err)
	}

	c.Start()
	log.Info("sync scheduler started", slog.String("spec", spec), slog.String("mode", mode))
	return c, nil
}
