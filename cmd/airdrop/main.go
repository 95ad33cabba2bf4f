// Command airdrop pays a reward list in atomic groups, logging every
// outcome so an interrupted run can be resumed.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/algod"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/blacklist"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/cli"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/csvio"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/distributor"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
	"go.uber.org/zap"
)

type config struct {
	cli.CommonOptions
	Node      cli.NodeOptions      `group:"Node options"`
	Feed      cli.FeedOptions      `group:"Feed options"`
	Blacklist cli.BlacklistOptions `group:"Blacklist options"`

	RewardList    string        `short:"a" long:"rewards" required:"true" description:"reward list to pay"`
	GroupSize     int           `short:"g" long:"group-size" default:"16" description:"transfers per atomic group"`
	SuccessFile   string        `long:"success-file" default:"successFile.csv" description:"log of confirmed transfers"`
	ErrorFile     string        `long:"error-file" default:"errorFile.csv" description:"log of failed transfers"`
	NoResume      bool          `long:"no-resume" description:"do not skip accounts already in the success log"`
	Note          string        `long:"note" default:"usertype" choice:"usertype" choice:"raw" choice:"none" description:"note attached to each transfer"`
	ConfirmRounds uint64        `long:"confirm-rounds" default:"8" description:"rounds to wait for a group to confirm"`
	PauseEvery    int           `long:"pause-every" default:"10" description:"pause after this many transfers, 0 to disable"`
	Pause         time.Duration `long:"pause" default:"1s" description:"pause length"`
	DryRun        bool          `long:"dry-run" description:"build and sign groups without submitting"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ok, err := cli.Parse(&cfg, os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if !ok {
		return
	}

	logger := cli.MustLogger(cfg.LogJSON)
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("airdrop failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	key := cli.Secret(cli.EnvSenderKey)
	if key == "" {
		return fmt.Errorf("%w: %s is not set", model.ErrConfiguration, cli.EnvSenderKey)
	}
	signer, err := algod.ParseSigner(key)
	if err != nil {
		return fmt.Errorf("%w: parse sender key: %w", model.ErrConfiguration, err)
	}

	list, err := csvio.ReadRewardList(cfg.RewardList)
	if err != nil {
		return err
	}

	exclude, err := loadBlacklist(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if !cfg.NoResume {
		done, err := csvio.ReadAccounts(cfg.SuccessFile)
		if err != nil {
			return fmt.Errorf("read success log: %w", err)
		}
		if len(done) > 0 {
			logger.Info("resuming", zap.String("success_file", cfg.SuccessFile), zap.Int("paid", len(done)))
		}
		exclude = exclude.Union(done)
	}

	success, err := csvio.OpenSuccessLog(cfg.SuccessFile, list.Extra)
	if err != nil {
		return err
	}
	defer success.Close()
	failure, err := csvio.OpenErrorLog(cfg.ErrorFile, list.Extra)
	if err != nil {
		return err
	}
	defer failure.Close()

	node, err := cfg.Node.Client(cfg.Network)
	if err != nil {
		return err
	}

	d, err := distributor.New(node, signer, success, failure, metrics.NewDistributor(), distributor.Config{
		GroupSize:     cfg.GroupSize,
		Note:          distributor.NoteMode(cfg.Note),
		ConfirmRounds: cfg.ConfirmRounds,
		PauseEvery:    cfg.PauseEvery,
		Pause:         cfg.Pause,
		DryRun:        cfg.DryRun,
	}, logger.Named("distributor"))
	if err != nil {
		return err
	}

	logger.Info("distributing",
		zap.String("sender", signer.Address().String()),
		zap.Int("records", len(list.Records)),
		zap.Int("excluded", len(exclude)),
		zap.Bool("dry_run", cfg.DryRun),
	)
	report, err := d.Distribute(ctx, list.Records, exclude)
	logger.Info("distribution finished",
		zap.Int("groups", report.Groups),
		zap.Int("sent", report.Sent),
		zap.Int("failed", report.Failed),
		zap.Int("rejected", report.Rejected),
		zap.Int("excluded", report.Excluded),
		zap.Int("zero", report.Zero),
		zap.Uint64("sent_amount", report.SentAmount),
		zap.Uint64("failed_amount", report.FailedAmount),
	)
	return err
}

func loadBlacklist(ctx context.Context, cfg config, logger *zap.Logger) (model.AddressSet, error) {
	if !cfg.Feed.Enabled() {
		if cfg.Blacklist.Remote {
			return nil, fmt.Errorf("%w: --remote-blacklist requires --feed-url", model.ErrConfiguration)
		}
		return blacklist.NewLoader(nil, logger).Load(ctx, cfg.Blacklist.Sources())
	}
	client, err := cfg.Feed.Client()
	if err != nil {
		return nil, err
	}
	return blacklist.NewLoader(client, logger).Load(ctx, cfg.Blacklist.Sources())
}
