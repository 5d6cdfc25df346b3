package di_test

import (
	"context"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/reshetovitsme/portfolio-feed/internal/di"
	"github.com/reshetovitsme/portfolio-feed/internal/modules/feed/domain"
	feedService "github.com/reshetovitsme/portfolio-feed/internal/modules/feed/service"
	postService "github.com/reshetovitsme/portfolio-feed/internal/modules/post/service"
	"github.com/reshetovitsme/portfolio-feed/internal/shared/config"
	httpServer "github.com/reshetovitsme/portfolio-feed/internal/transport/http"
	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWithFileStorage(t *testing.T) {
	cfg := &config.Config{
		HTTPPort:         "0",
		StorageDriver:    config.StorageDriverFile,
		StoragePath:      t.TempDir(),
		SiteURL:          "https://jane.dev",
		SiteTitle:        "Jane Doe",
		SiteDescription:  "Notes",
		ScheduleInterval: 60,
	}
	injector := di.SetupWithConfig(cfg)

	_, err := do.Invoke[*httpServer.Server](injector)
	require.NoError(t, err)

	feeds, err := do.Invoke[*feedService.Service](injector)
	require.NoError(t, err)

	doc, err := feeds.Feed(context.Background(), domain.FormatRss)
	require.NoError(t, err)
	assert.Contains(t, doc.Body, "<title>Jane Doe</title>")

	_, err = do.Invoke[*postService.Service](injector)
	require.NoError(t, err)

	_, err = do.Invoke[*bot.Bot](injector)
	assert.Error(t, err, "bot must not be registered without a token")

	assert.NoError(t, di.Shutdown(injector))
}
