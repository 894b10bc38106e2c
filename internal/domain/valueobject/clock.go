package valueobject

import "time"

// Clock supplies the current instant and its KST business keys.
type Clock interface {
	Now() time.Time
	NowDateKey() string
	NowTimeKey() string
}

type kstClock struct {
	now func() time.Time
}

// NewKSTClock returns a clock backed by the system time.
func NewKSTClock() Clock {
	return &kstClock{now: time.Now}
}

// NewClock returns a clock backed by the given time source.
func NewClock(now func() time.Time) Clock {
	return &kstClock{now: now}
}

// NewFixedClock returns a clock frozen at t.
func NewFixedClock(t time.Time) Clock {
	return &kstClock{now: func() time.Time { return t }}
}

func (c *kstClock) Now() time.Time {
	return c.now().UTC()
}

func (c *kstClock) NowDateKey() string {
	return ToDateKey(c.now())
}

func (c *kstClock) NowTimeKey() string {
	return ToTimeKey(c.now())
}
