package config

import "time"

const (
	INSTAGRAM_API_BASE    = "https://api.instagram.com/v1"
	RECENT_MEDIA_COUNT    = 100
	THROTTLE_THRESHOLD    = 100
	THROTTLE_COOLDOWN     = 60 * time.Second
	CRAWLER_QUEUE_SIZE    = 5000
	CRAWLER_MAX_BRANCHING = 5
	CRAWLER_MAX_FAULTS    = 10
	CRAWLER_CRON_SCHEDULE = "@every 6h"
)
