package engine

import (
	"context"

	"golang.org/x/time/rate"
)

// dataLimiter smooths YouTube Data API traffic. Search costs 100 quota units
// per call against a 10k/day default quota.
var dataLimiter = rate.NewLimiter(rate.Inf, 1)

// initDataLimiter configures the limiter from Config. rps <= 0 disables limiting.
func initDataLimiter(rps float64) {
	if rps <= 0 {
		dataLimiter = rate.NewLimiter(rate.Inf, 1)
		return
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	dataLimiter = rate.NewLimiter(rate.Limit(rps), burst)
}

// WaitDataAPI blocks until the limiter admits one Data API request.
func WaitDataAPI(ctx context.Context) error {
	return dataLimiter.Wait(ctx)
}
