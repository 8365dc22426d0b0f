package timezone

import "time"

var Location = time.UTC

// imports run from wherever an analyst happens to deploy, so stored
// timestamps are pinned to UTC to keep (handle, platform) merge times
// comparable across workers
func Now() time.Time {
	return time.Now().In(Location)
}
