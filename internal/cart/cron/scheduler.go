package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mvps-print/printshop-backend/internal/cart/repository"
)

const staleAfter = 30 * 24 * time.Hour

type Scheduler struct {
	carts *repository.CartRepository
}

func NewScheduler(carts *repository.CartRepository) *Scheduler {
	return &Scheduler{carts: carts}
}

// Start schedules the nightly stale-cart purge (12:00 AM).
func (s *Scheduler) Start() {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc("0 0 0 * * *", func() {
		s.purge()
	})
	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Println("Cron scheduler started (cart purge nightly at 12:00AM)")
	c.Start()
}

func (s *Scheduler) purge() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-staleAfter)
	n, err := s.carts.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("Cart purge failed: %v", err)
		return
	}
	log.Printf("Cart purge removed %d stale rows", n)
}
