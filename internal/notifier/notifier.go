// Package notifier polls the social feed and posts a notification once
// per genuinely new post.
package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fgo_bot/internal/model"
	"fgo_bot/internal/telemetry"
)

// Source is the feed capability the notifier polls.
type Source interface {
	Latest(ctx context.Context) ([]model.FeedPost, error)
}

// Sender is the interface for posting chat messages.
type Sender interface {
	SendMessage(chatID int64, text string)
}

// Notifier periodically checks the feed's newest post and notifies the
// configured chat when its ID changes.
//
// lastNotifiedID is owned exclusively by the poll loop: Run drives every
// tick from a single goroutine, so ticks are strictly serialized and the
// field needs no locking. It is never cleared once set; the first tick
// after startup always notifies (cold start).
type Notifier struct {
	source Source
	sender Sender
	chatID int64
	log    *slog.Logger
	tick   time.Duration

	lastNotifiedID string
}

// New creates a Notifier posting to the given chat.
func New(source Source, sender Sender, chatID int64, tick time.Duration, log *slog.Logger) *Notifier {
	return &Notifier{
		source: source,
		sender: sender,
		chatID: chatID,
		log:    log,
		tick:   tick,
	}
}

// Run starts the poll loop, blocking until ctx is cancelled. A tick fully
// completes, including the state update, before the next one can fire.
func (n *Notifier) Run(ctx context.Context) {
	n.poll(ctx)

	ticker := time.NewTicker(n.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n.poll(ctx)
		}
	}
}

// poll executes one tick. Failures are logged and dropped; the next tick
// is the only retry mechanism.
func (n *Notifier) poll(ctx context.Context) {
	telemetry.IncFeedPolls()

	posts, err := n.source.Latest(ctx)
	if err != nil {
		n.log.Error("fetch feed", "error", err)
		telemetry.IncFeedPollFailures()
		return
	}
	if len(posts) == 0 {
		return
	}

	newest := posts[0]
	if newest.ID == n.lastNotifiedID {
		return
	}

	n.lastNotifiedID = newest.ID
	n.sender.SendMessage(n.chatID, FormatNotification(newest))
	telemetry.IncNotificationsSent()
	n.log.Info("notified new post", "post_id", newest.ID)
}

// FormatNotification formats a feed post as a chat notification.
func FormatNotification(post model.FeedPost) string {
	var b strings.Builder
	b.WriteString("New post from the official account!\n\n")
	b.WriteString(post.Title)
	if post.Link != "" {
		b.WriteString("\n\n")
		b.WriteString(post.Link)
	}
	if !post.Published.IsZero() {
		fmt.Fprintf(&b, "\n\nPosted: %s", post.Published.Format("2006-01-02 15:04 UTC"))
	}
	return b.String()
}
