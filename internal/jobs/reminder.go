package jobs

import (
	"context"
	"log"
	"time"

	"github.com/DhanunjayTheDev/ecombazaar/internal/service"

	"github.com/robfig/cron"
)

// StartScheduler runs the nightly job that flags orders still pending
// fulfilment. It logs a reminder per order for the operations team; it
// never mutates the orders themselves.
func StartScheduler(orders service.OrderService) *cron.Cron {
	c := cron.New()

	err := c.AddFunc("@midnight", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		pending, err := orders.PendingOrders(ctx)
		if err != nil {
			log.Printf("[CRON] pending order sweep failed: %v", err)
			return
		}
		if len(pending) == 0 {
			log.Println("[CRON] no pending orders")
			return
		}

		log.Printf("[CRON] %d orders awaiting processing", len(pending))
		for _, o := range pending {
			log.Printf("[CRON] reminder: order %s placed %s (amount: %.2f) is still pending",
				o.ID.Hex(), o.CreatedAt.Format("2006-01-02"), o.TotalAmount)
		}
	})
	if err != nil {
		log.Printf("[CRON] failed to schedule pending order sweep: %v", err)
	}

	c.Start()
	return c
}
