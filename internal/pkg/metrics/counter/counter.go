package counter

import (
	"context"
	"strconv"

	"github.com/genesishub/checkout/internal/pkg/cache"
	"github.com/redis/go-redis/v9"
)

const (
	webhooksReceivedKey  = "payments:counters:webhooks_received"
	checkoutsCreatedKey  = "payments:counters:checkouts_created"
	paymentsConfirmedKey = "payments:counters:payments_confirmed"
)

// Totals is a snapshot of the redis-backed service counters.
type Totals struct {
	WebhooksReceived  map[string]int64 `json:"webhooks_received"`
	CheckoutsCreated  int64            `json:"checkouts_created"`
	PaymentsConfirmed int64            `json:"payments_confirmed"`
}

// AddWebhookReceived increments the received-webhook counter for a gateway
func AddWebhookReceived(gateway string) error {
	ctx := context.Background()
	return cache.GetClient().HIncrBy(ctx, webhooksReceivedKey, gateway, 1).Err()
}

// AddCheckoutCreated increments the created-checkout counter
func AddCheckoutCreated() error {
	ctx := context.Background()
	return cache.GetClient().Incr(ctx, checkoutsCreatedKey).Err()
}

// AddPaymentConfirmed increments the confirmed-payment counter
func AddPaymentConfirmed() error {
	ctx := context.Background()
	return cache.GetClient().Incr(ctx, paymentsConfirmedKey).Err()
}

// GetTotals reads all counters in one pass for the admin stats endpoint
func GetTotals() (*Totals, error) {
	ctx := context.Background()
	rdb := cache.GetClient()

	byGateway, err := rdb.HGetAll(ctx, webhooksReceivedKey).Result()
	if err != nil && err != redis.Nil {
		return nil, err
	}

	totals := &Totals{WebhooksReceived: make(map[string]int64, len(byGateway))}
	for gateway, raw := range byGateway {
		n, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			continue
		}
		totals.WebhooksReceived[gateway] = n
	}

	if totals.CheckoutsCreated, err = readCounter(ctx, rdb, checkoutsCreatedKey); err != nil {
		return nil, err
	}
	if totals.PaymentsConfirmed, err = readCounter(ctx, rdb, paymentsConfirmedKey); err != nil {
		return nil, err
	}
	return totals, nil
}

func readCounter(ctx context.Context, rdb *redis.Client, key string) (int64, error) {
	n, err := rdb.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}
