package segment

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// UUIDGenerator derives segment and trace identifiers from random UUIDs.
// Clock is used for the epoch component of trace identifiers; nil means wall time.
type UUIDGenerator struct {
	Clock Clock
}

// NewSegmentID returns the first 8 bytes of a random UUID as 16 hex digits.
func (g UUIDGenerator) NewSegmentID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:8])
}

// NewTraceID returns "1-" followed by the epoch seconds in 8 hex digits and
// 96 random bits in 24 hex digits.
func (g UUIDGenerator) NewTraceID() string {
	clock := g.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	id := uuid.New()
	return fmt.Sprintf("1-%08x-%s", clock.Now().Unix(), hex.EncodeToString(id[4:]))
}

var (
	defaultIDGenerator IDGenerator = UUIDGenerator{}
	defaultClock       Clock       = clockwork.NewRealClock()
)

// DefaultIDGenerator returns the generator used by segments created without WithIDGenerator.
func DefaultIDGenerator() IDGenerator {
	return defaultIDGenerator
}

// DefaultClock returns the clock used by segments created without WithClock.
func DefaultClock() Clock {
	return defaultClock
}

// epochSeconds renders t as fractional seconds since the epoch at microsecond precision.
func epochSeconds(t time.Time) float64 {
	return float64(t.UnixMicro()) / 1e6
}
