package locator

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
	"go.uber.org/zap"
)

// Bound is one end of an epoch, given either as a calendar day or a height.
type Bound struct {
	Day    time.Time
	Height uint64
}

// IsDay reports whether the bound is a calendar day.
func (b Bound) IsDay() bool { return !b.Day.IsZero() }

func (b Bound) String() string {
	if b.IsDay() {
		return b.Day.Format(clock.DayLayout)
	}
	return strconv.FormatUint(b.Height, 10)
}

// ParseBound accepts YYYY-MM-DD or a positive integer height.
func ParseBound(s string) (Bound, error) {
	s = strings.TrimSpace(s)
	if h, err := strconv.ParseUint(s, 10, 64); err == nil {
		if h == 0 {
			return Bound{}, fmt.Errorf("%w: block height must be positive", model.ErrConfiguration)
		}
		return Bound{Height: h}, nil
	}
	day, err := clock.ParseDay(s)
	if err != nil {
		return Bound{}, fmt.Errorf("%w: %q is neither a date nor a height", model.ErrConfiguration, s)
	}
	return Bound{Day: day}, nil
}

// ResolveEpoch turns two bounds into an inclusive height range. A start day
// maps to the first block of that day. An end day maps to the last block of
// that day, or to the chain tip when the day has not ended yet.
func (l *Locator) ResolveEpoch(ctx context.Context, start, end Bound) (model.EpochRange, error) {
	tip, err := l.tip(ctx)
	if err != nil {
		return model.EpochRange{}, err
	}

	startHeight := start.Height
	if start.IsDay() {
		startHeight, err = l.locate(ctx, clock.StartOfDay(start.Day), 1, tip)
		if err != nil {
			return model.EpochRange{}, fmt.Errorf("locate epoch start: %w", err)
		}
	}
	if startHeight > tip {
		return model.EpochRange{}, fmt.Errorf("%w: epoch start %s is after chain tip %d", model.ErrConfiguration, start, tip)
	}

	endHeight := end.Height
	if end.IsDay() {
		cutoff := clock.EndOfDay(end.Day)
		endHeight, err = l.locate(ctx, cutoff.Add(time.Second), startHeight, tip)
		if err != nil {
			return model.EpochRange{}, fmt.Errorf("locate epoch end: %w", err)
		}
		if endHeight > tip {
			endHeight = tip
		} else {
			b, err := l.block(ctx, endHeight)
			if err != nil {
				return model.EpochRange{}, err
			}
			if b.Timestamp.After(cutoff) {
				endHeight--
			}
		}
	} else if endHeight > tip {
		l.logger.Warn("epoch end beyond chain tip, clamping", zap.Uint64("end", endHeight), zap.Uint64("tip", tip))
		endHeight = tip
	}

	epoch := model.EpochRange{StartHeight: startHeight, EndHeight: endHeight}
	if err := epoch.Validate(); err != nil {
		return model.EpochRange{}, fmt.Errorf("%w: %w", model.ErrConfiguration, err)
	}

	first, err := l.block(ctx, startHeight)
	if err != nil {
		return model.EpochRange{}, err
	}
	last, err := l.block(ctx, endHeight)
	if err != nil {
		return model.EpochRange{}, err
	}
	epoch.StartTime = first.Timestamp
	epoch.EndTime = last.Timestamp

	l.logger.Info("resolved epoch",
		zap.String("start", start.String()),
		zap.String("end", end.String()),
		zap.Uint64("start_height", epoch.StartHeight),
		zap.Uint64("end_height", epoch.EndHeight),
		zap.Time("start_time", epoch.StartTime),
		zap.Time("end_time", epoch.EndTime),
	)
	return epoch, nil
}
