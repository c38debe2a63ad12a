package bot

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"fgo_bot/internal/model"
	"fgo_bot/internal/timeutil"
)

func (b *Bot) handleStart(chatID int64) {
	b.reply(chatID, `Welcome to the FGO Region Bot!

Look up servants across the NA and JP catalogs and get notified about
new posts from the official account.

Quick start:
1. /servantcheck <name> — does a servant exist in NA, JP, or both?
2. /banners <name> — upcoming banners for a servant

Use /help for the full command reference.`)
}

func (b *Bot) handleHelp(chatID int64) {
	b.reply(chatID, `Available commands:
/servantcheck <name> — check if a servant exists in NA, JP, or both
/banners <name> — upcoming banners for a servant, with estimated NA dates for JP banners
/servertime — current NA server time
/ping — check if the bot is responsive
/help — this message`)
}

func (b *Bot) handleServerTime(chatID int64) {
	now := timeutil.ServerNow()
	b.reply(chatID, fmt.Sprintf("Fate/Grand Order NA Server Time: %s", now.Format("2006-01-02 15:04:05 MST")))
}

func (b *Bot) handleServantCheck(ctx context.Context, chatID int64, args string) {
	if args == "" {
		b.reply(chatID, "Usage: /servantcheck <name>")
		return
	}

	h := b.acknowledge(chatID, fmt.Sprintf("Checking %q in NA and JP...", args))

	res := b.matcher.Match(ctx, args)
	b.complete(h, FormatMatchReport(res))

	if rep := representative(res); rep != nil {
		if url := rep.ArtworkURL(); url != "" {
			b.sendPhoto(chatID, url)
		}
	}
}

func (b *Bot) handleBanners(ctx context.Context, chatID int64, args string) {
	if args == "" {
		b.reply(chatID, "Usage: /banners <name>")
		return
	}

	h := b.acknowledge(chatID, fmt.Sprintf("Looking up banners for %q...", args))

	res := b.matcher.Match(ctx, args)
	if res.Relationship == model.RelNone {
		b.complete(h, FormatMatchReport(res))
		return
	}

	var naBanners, jpBanners []model.Banner
	g, gctx := errgroup.WithContext(ctx)
	if res.NA != nil {
		g.Go(func() error {
			naBanners = b.resolver.Upcoming(gctx, res.NA.ID, model.RegionNA)
			return nil
		})
	}
	if res.JP != nil {
		g.Go(func() error {
			jpBanners = b.resolver.Upcoming(gctx, res.JP.ID, model.RegionJP)
			return nil
		})
	}
	_ = g.Wait()

	b.complete(h, FormatBannerReport(res, naBanners, jpBanners))
}

// representative picks the servant whose artwork illustrates a report,
// preferring the NA record when both regions matched.
func representative(res model.MatchResult) *model.Servant {
	if res.NA != nil {
		return res.NA
	}
	return res.JP
}
