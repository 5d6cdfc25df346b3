package telegram

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	feedDomain "github.com/reshetovitsme/portfolio-feed/internal/modules/feed/domain"
	feedService "github.com/reshetovitsme/portfolio-feed/internal/modules/feed/service"
	postDomain "github.com/reshetovitsme/portfolio-feed/internal/modules/post/domain"
	postService "github.com/reshetovitsme/portfolio-feed/internal/modules/post/service"
	userService "github.com/reshetovitsme/portfolio-feed/internal/modules/user/service"
	"github.com/reshetovitsme/portfolio-feed/internal/shared/config"
	"github.com/reshetovitsme/portfolio-feed/internal/shared/errors"
	"github.com/samber/lo"
)

const maxListedPosts = 20

const helpText = `👋 Portfolio feed admin

Commands:
/help - Show this help message
/posts - List posts, newest first
/publish <post_id> - Publish a post
/unpublish <post_id> - Move a post back to drafts
/archive <post_id> - Archive a post
/feeds - Show feed links
/status - Show service status`

// Handler handles Telegram bot interactions for site administrators
type Handler struct {
	cfg         *config.Config
	postService *postService.Service
	feedService *feedService.Service
	userService *userService.Service
}

// New creates a new Telegram handler
func New(cfg *config.Config, postService *postService.Service, feedService *feedService.Service, userService *userService.Service) *Handler {
	return &Handler{
		cfg:         cfg,
		postService: postService,
		feedService: feedService,
		userService: userService,
	}
}

// RegisterCommands registers bot commands
func (h *Handler) RegisterCommands(b *bot.Bot) {
	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, h.handleStart)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, h.handleHelp)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/posts", bot.MatchTypeExact, h.handlePosts)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/publish", bot.MatchTypePrefix, h.statusHandler(postDomain.PostStatusPublished))
	b.RegisterHandler(bot.HandlerTypeMessageText, "/unpublish", bot.MatchTypePrefix, h.statusHandler(postDomain.PostStatusDraft))
	b.RegisterHandler(bot.HandlerTypeMessageText, "/archive", bot.MatchTypePrefix, h.statusHandler(postDomain.PostStatusArchived))
	b.RegisterHandler(bot.HandlerTypeMessageText, "/feeds", bot.MatchTypeExact, h.handleFeeds)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/status", bot.MatchTypeExact, h.handleStatus)
}

// HandleUpdate receives every update no command matched
func (h *Handler) HandleUpdate(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || !strings.HasPrefix(update.Message.Text, "/") {
		return
	}
	h.reply(ctx, b, update, "Unknown command. Send /help for the list of commands.")
}

func (h *Handler) reply(ctx context.Context, b *bot.Bot, update *models.Update, text string) {
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   text,
	}); err != nil {
		slog.Error("Failed to send reply", "chat_id", update.Message.Chat.ID, "error", err)
	}
}

// authorized replies with a refusal when the sender may not manage posts
func (h *Handler) authorized(ctx context.Context, b *bot.Bot, update *models.Update) bool {
	if update.Message.From != nil && h.userService.IsAuthorized(update.Message.From.ID) {
		return true
	}
	h.reply(ctx, b, update, "❌ Unauthorized")
	return false
}

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message.From == nil {
		return
	}
	userID := update.Message.From.ID

	ok, err := h.userService.Bootstrap(userID, update.Message.From.Username)
	if err != nil {
		slog.Error("Failed to register user", "user_id", userID, "error", err)
		h.reply(ctx, b, update, "❌ Failed to register you, try again later.")
		return
	}
	if !ok {
		h.reply(ctx, b, update, "❌ You are not authorized to use this bot.")
		return
	}

	h.reply(ctx, b, update, helpText)
}

func (h *Handler) handleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.authorized(ctx, b, update) {
		return
	}
	h.reply(ctx, b, update, helpText)
}

func (h *Handler) handlePosts(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.authorized(ctx, b, update) {
		return
	}

	posts, err := h.postService.List(ctx)
	if err != nil {
		slog.Error("Failed to list posts", "error", err)
		h.reply(ctx, b, update, fmt.Sprintf("❌ Failed to list posts: %v", err))
		return
	}

	h.reply(ctx, b, update, formatPosts(posts))
}

func (h *Handler) statusHandler(status postDomain.PostStatus) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if !h.authorized(ctx, b, update) {
			return
		}
		h.reply(ctx, b, update, h.changeStatus(ctx, update.Message.Text, status))
	}
}

// changeStatus applies status to the post named in the command text and
// returns the reply.
func (h *Handler) changeStatus(ctx context.Context, text string, status postDomain.PostStatus) string {
	command, postID := commandArgs(text)
	if postID == "" {
		return fmt.Sprintf("Usage: %s <post_id>", command)
	}

	post, err := h.postService.SetStatus(ctx, postID, status.String())
	if err != nil {
		if stderrors.Is(err, errors.ErrPostNotFound) {
			return fmt.Sprintf("❌ Post not found: %s", postID)
		}
		slog.Error("Failed to change post status", "post_id", postID, "status", status, "error", err)
		return fmt.Sprintf("❌ Failed to update post: %v", err)
	}

	slog.Info("Post status changed", "post_id", post.ID, "status", post.Status)
	return fmt.Sprintf("✅ %q is now %s", post.Title, post.Status)
}

func (h *Handler) handleFeeds(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.authorized(ctx, b, update) {
		return
	}
	h.reply(ctx, b, update, formatFeeds(h.feedService.URLs()))
}

func (h *Handler) handleStatus(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.authorized(ctx, b, update) {
		return
	}

	text, err := h.statusText(ctx)
	if err != nil {
		slog.Error("Failed to build status", "error", err)
		h.reply(ctx, b, update, fmt.Sprintf("❌ Failed to get status: %v", err))
		return
	}
	h.reply(ctx, b, update, text)
}

func (h *Handler) statusText(ctx context.Context) (string, error) {
	posts, err := h.postService.List(ctx)
	if err != nil {
		return "", err
	}

	counts := lo.CountValuesBy(posts, func(p *postDomain.Post) postDomain.PostStatus {
		return p.Status
	})

	limit := "all"
	if h.cfg.FeedLimit > 0 {
		limit = fmt.Sprintf("%d", h.cfg.FeedLimit)
	}

	return fmt.Sprintf(`📊 Service Status:

Posts: %d (Published: %d, Scheduled: %d, Drafts: %d, Archived: %d)
Feed items: %s
Schedule Interval: %d seconds
HTTP Port: %s
Storage: %s`,
		len(posts),
		counts[postDomain.PostStatusPublished],
		counts[postDomain.PostStatusScheduled],
		counts[postDomain.PostStatusDraft],
		counts[postDomain.PostStatusArchived],
		limit, h.cfg.ScheduleInterval, h.cfg.HTTPPort, h.cfg.StorageDriver), nil
}

// commandArgs splits "/publish@my_bot 42" into "/publish" and "42".
func commandArgs(text string) (string, string) {
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return "", ""
	}
	command, _, _ := strings.Cut(parts[0], "@")
	if len(parts) < 2 {
		return command, ""
	}
	return command, parts[1]
}

func formatPosts(posts []*postDomain.Post) string {
	if len(posts) == 0 {
		return "📭 No posts yet."
	}

	var text strings.Builder
	text.WriteString(fmt.Sprintf("📝 Posts (%d):\n\n", len(posts)))
	for _, p := range lo.Slice(posts, 0, maxListedPosts) {
		date := "no date"
		if !p.PublishDate.IsZero() {
			date = p.PublishDate.Format("2006-01-02 15:04")
		}
		text.WriteString(fmt.Sprintf("• [%s] %s\n  ID: %s\n  Date: %s\n\n", p.Status, p.Title, p.ID, date))
	}
	if len(posts) > maxListedPosts {
		text.WriteString(fmt.Sprintf("…and %d more", len(posts)-maxListedPosts))
	}
	return strings.TrimRight(text.String(), "\n")
}

func formatFeeds(urls map[feedDomain.Format]string) string {
	var text strings.Builder
	text.WriteString("🔗 Feed Links:\n")
	for _, name := range feedDomain.FormatNames() {
		url, ok := urls[feedDomain.Format(name)]
		if !ok {
			continue
		}
		text.WriteString(fmt.Sprintf("\n%s: %s", strings.ToUpper(name), url))
	}
	return text.String()
}
