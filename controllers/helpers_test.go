package controllers

import (
	"time"
)

func testTime() time.Time {
	return time.Unix(1700000000, 0)
}
