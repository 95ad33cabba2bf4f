package rewards

import (
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
	"go.uber.org/zap"
)

// Summary compares the pools with what the reward lines actually pay.
type Summary struct {
	Proposers      int
	TotalBlocks    uint64
	ExpectedBlock  uint64
	ActualBlock    uint64
	ExpectedHealth uint64
	ActualHealth   uint64
	ZeroLines      int
}

// Summarize totals lines against the pools in params.
func Summarize(lines []model.RewardLine, totalBlocks uint64, params Params) Summary {
	s := Summary{
		Proposers:      len(lines),
		TotalBlocks:    totalBlocks,
		ExpectedBlock:  params.BlockPool,
		ExpectedHealth: params.HealthPool,
	}
	for _, l := range lines {
		s.ActualBlock += l.BlockReward
		s.ActualHealth += l.HealthReward
		if l.TokenAmount() == 0 {
			s.ZeroLines++
		}
	}
	return s
}

// ExpectedTotal is the sum of both pools.
func (s Summary) ExpectedTotal() uint64 { return s.ExpectedBlock + s.ExpectedHealth }

// ActualTotal is the sum paid across all lines.
func (s Summary) ActualTotal() uint64 { return s.ActualBlock + s.ActualHealth }

// Log writes the summary as one structured line.
func (s Summary) Log(logger *zap.Logger) {
	logger.Info("reward summary",
		zap.Int("proposers", s.Proposers),
		zap.Int("zero_amount", s.ZeroLines),
		zap.Uint64("blocks", s.TotalBlocks),
		zap.Stringer("block_expected", Tokens(s.ExpectedBlock)),
		zap.Stringer("block_actual", Tokens(s.ActualBlock)),
		zap.Stringer("health_expected", Tokens(s.ExpectedHealth)),
		zap.Stringer("health_actual", Tokens(s.ActualHealth)),
		zap.Stringer("total_expected", Tokens(s.ExpectedTotal())),
		zap.Stringer("total_actual", Tokens(s.ActualTotal())),
	)
}
