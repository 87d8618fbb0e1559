package schedule

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrInvalidCatalogConfig marks a malformed slot generation configuration.
// It is fatal at startup, never per-request.
var ErrInvalidCatalogConfig = errors.New("invalid catalog config")

type Mode string

const (
	// ModeFixed generates the same configured list of blocks every day.
	ModeFixed Mode = "fixed"
	// ModeInterval generates blocks of a fixed duration stepping from a
	// day-start offset to a day-end offset. Step and duration may differ,
	// allowing gaps or overlaps.
	ModeInterval Mode = "interval"
)

// FixedBlock positions one catalog block relative to midnight.
type FixedBlock struct {
	Offset   time.Duration
	Duration time.Duration
}

// Catalog produces the ordered set of bookable blocks for a calendar day.
// The catalog does not vary by day of week.
type Catalog struct {
	Mode Mode
	Loc  *time.Location

	// Fixed mode.
	Blocks []FixedBlock

	// Interval mode.
	DayStart time.Duration
	DayEnd   time.Duration
	Step     time.Duration
	Duration time.Duration
}

func (c *Catalog) Validate() error {
	if c.Loc == nil {
		return fmt.Errorf("%w: location is required", ErrInvalidCatalogConfig)
	}
	switch c.Mode {
	case ModeFixed:
		if len(c.Blocks) == 0 {
			return fmt.Errorf("%w: fixed mode needs at least one block", ErrInvalidCatalogConfig)
		}
		seen := make(map[time.Duration]struct{}, len(c.Blocks))
		for _, b := range c.Blocks {
			if b.Offset < 0 {
				return fmt.Errorf("%w: negative block offset %v", ErrInvalidCatalogConfig, b.Offset)
			}
			if b.Duration <= 0 {
				return fmt.Errorf("%w: block duration must be positive", ErrInvalidCatalogConfig)
			}
			if _, ok := seen[b.Offset]; ok {
				return fmt.Errorf("%w: duplicate block start at offset %v", ErrInvalidCatalogConfig, b.Offset)
			}
			seen[b.Offset] = struct{}{}
		}
	case ModeInterval:
		if c.Duration <= 0 {
			return fmt.Errorf("%w: duration must be positive", ErrInvalidCatalogConfig)
		}
		if c.Step <= 0 {
			return fmt.Errorf("%w: step must be positive", ErrInvalidCatalogConfig)
		}
		if c.DayStart < 0 {
			return fmt.Errorf("%w: negative day start %v", ErrInvalidCatalogConfig, c.DayStart)
		}
		if c.DayStart+c.Duration > c.DayEnd {
			return fmt.Errorf("%w: no block fits between day start and day end", ErrInvalidCatalogConfig)
		}
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidCatalogConfig, c.Mode)
	}
	return nil
}

// Generate returns the day's blocks sorted by start time. Duplicate start
// times are a configuration error.
func (c *Catalog) Generate(day time.Time) ([]TimeBlock, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	local := day.In(c.Loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.Loc)

	var blocks []TimeBlock
	switch c.Mode {
	case ModeFixed:
		for _, fb := range c.Blocks {
			blocks = append(blocks, newBlock(midnight.Add(fb.Offset), fb.Duration))
		}
	case ModeInterval:
		for off := c.DayStart; off+c.Duration <= c.DayEnd; off += c.Step {
			blocks = append(blocks, newBlock(midnight.Add(off), c.Duration))
		}
	}

	sort.Slice(blocks, func(i, j int) bool { return blocks[i].Start.Before(blocks[j].Start) })

	for i := 1; i < len(blocks); i++ {
		if blocks[i].StartKey() == blocks[i-1].StartKey() {
			return nil, fmt.Errorf("%w: duplicate block start %s", ErrInvalidCatalogConfig, blocks[i].Start.Format("15:04"))
		}
	}

	return blocks, nil
}

func newBlock(start time.Time, d time.Duration) TimeBlock {
	end := start.Add(d)
	return TimeBlock{
		Start: start,
		End:   end,
		Label: start.Format("15:04") + "-" + end.Format("15:04"),
	}
}
