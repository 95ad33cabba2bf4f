// Package blacklist assembles the set of addresses excluded from rewards
// and payouts.
package blacklist

import (
	"context"
	"fmt"
	"strings"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/csvio"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
	"go.uber.org/zap"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Feed serves remote blacklist sources.
	Feed interface {
		Blacklist(ctx context.Context) ([]string, error)
		Ballast(ctx context.Context) ([]string, error)
	}
)

// Sources names where blacklisted addresses come from. Every source is optional.
type Sources struct {
	// File is a CSV with an account column or a bare address list.
	File string
	// Inline is a comma separated address list.
	Inline string
	// Remote enables the statistics blacklist and the ballast feed.
	Remote bool
}

// Loader unions blacklist sources.
type Loader struct {
	feed   Feed
	logger *zap.Logger
}

// NewLoader constructs a Loader. feed may be nil when no remote source is used.
func NewLoader(feed Feed, logger *zap.Logger) *Loader {
	return &Loader{feed: feed, logger: logger.Named("blacklist")}
}

// Load returns the union of all configured sources. A remote failure is
// fatal: paying a blacklisted address cannot be undone.
func (l *Loader) Load(ctx context.Context, src Sources) (model.AddressSet, error) {
	set := model.NewAddressSet(ParseList(src.Inline)...)

	if src.File != "" {
		fromFile, err := csvio.ReadAccounts(src.File)
		if err != nil {
			return nil, fmt.Errorf("load blacklist file: %w: %w", model.ErrConfiguration, err)
		}
		set = set.Union(fromFile)
		l.logger.Info("loaded blacklist file", zap.String("file", src.File), zap.Int("addresses", len(fromFile)))
	}

	if src.Remote {
		if l.feed == nil {
			return nil, fmt.Errorf("remote blacklist requested without a feed: %w", model.ErrConfiguration)
		}
		remote, err := l.feed.Blacklist(ctx)
		if err != nil {
			return nil, fmt.Errorf("load remote blacklist: %w", err)
		}
		ballast, err := l.feed.Ballast(ctx)
		if err != nil {
			return nil, fmt.Errorf("load ballast: %w", err)
		}
		set.Add(remote...)
		set.Add(ballast...)
		l.logger.Info("loaded remote blacklist", zap.Int("blacklist", len(remote)), zap.Int("ballast", len(ballast)))
	}

	return set, nil
}

// ParseList splits a comma separated address list, dropping blanks.
func ParseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
