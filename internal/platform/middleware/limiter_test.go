// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/taibuivan/backoffice/internal/platform/constants"
)

func TestLimiterSet_SweepDropsIdleClients(t *testing.T) {
	set := &limiterSet{rps: rate.Limit(1), burst: 1, clients: make(map[string]*limitedClient)}
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, set.allow("10.0.0.1", start))
	assert.False(t, set.allow("10.0.0.1", start))
	assert.True(t, set.allow("10.0.0.2", start.Add(constants.RateLimitClientTTL)))

	set.sweep(start.Add(constants.RateLimitClientTTL + time.Second))

	assert.NotContains(t, set.clients, "10.0.0.1")
	assert.Contains(t, set.clients, "10.0.0.2")
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, "INFO", levelFor(307).String())
	assert.Equal(t, "WARN", levelFor(404).String())
	assert.Equal(t, "ERROR", levelFor(502).String())
}
