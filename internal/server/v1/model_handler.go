package v1

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/reaxo/reaxo/internal/config"
	"github.com/reaxo/reaxo/internal/httpclient"
	"github.com/reaxo/reaxo/internal/store/cache"
)

const modelListCacheKey = "upstream:models"

// ModelHandler forwards the upstream model catalog. The upstream list moves
// rarely, so responses are cached briefly to spare the gateway.
type ModelHandler struct {
	upstream config.UpstreamConfig
	client   httpclient.HTTPClient
	cache    cache.CacheService
	logger   *zap.Logger
}

func NewModelHandler(upstream config.UpstreamConfig, client httpclient.HTTPClient, cacheService cache.CacheService, logger *zap.Logger) *ModelHandler {
	if client == nil {
		client = &http.Client{}
	}
	return &ModelHandler{
		upstream: upstream,
		client:   client,
		cache:    cacheService,
		logger:   logger,
	}
}

func (h *ModelHandler) ListModels(c *gin.Context) {
	ctx := c.Request.Context()

	if h.cache != nil {
		var cached json.RawMessage
		if err := h.cache.Get(ctx, modelListCacheKey, &cached); err == nil {
			c.Data(http.StatusOK, "application/json", cached)
			return
		}
	}

	headers := map[string]string{
		"Authorization": "Bearer " + h.upstream.APIKey,
	}

	var payload json.RawMessage
	if err := httpclient.SendRequest(ctx, h.client, http.MethodGet, h.upstream.ModelsURL, headers, nil, &payload); err != nil {
		_ = c.Error(err)
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, modelListCacheKey, payload, 5*time.Minute); err != nil {
			h.logger.Debug("Failed to cache model list", zap.Error(err))
		}
	}

	c.Data(http.StatusOK, "application/json", payload)
}
