package utils

import "time"

// Timestamps are stored as epoch seconds.
func NowUnixSeconds() int64 { return time.Now().Unix() }
