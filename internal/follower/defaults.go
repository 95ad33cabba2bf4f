package follower

import "time"

const (
	defaultChunkSize   uint64 = 100
	defaultWorkerCount        = 4

	fetchTimeout  = 5 * time.Second
	sleepDuration = 10 * time.Second
)
