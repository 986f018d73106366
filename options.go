package docdex

import (
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docdex/internal/domain"
)

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	addrs    []string
	username string
	password string
	db       int

	openaiAPIKey  string
	openaiBaseURL string
	embedModel    string
	dimensions    int
	summaryModel  string
	embedder      Embedder

	chunkSize    int
	chunkOverlap int

	policy domain.RelevancePolicy

	searchTTL    time.Duration
	embeddingTTL time.Duration

	fetchTimeout time.Duration
	poll         time.Duration

	logger *zap.Logger
}

func defaultClientConfig() *clientConfig {
	return &clientConfig{
		embedModel: defaultEmbeddingModel,
		dimensions: defaultVectorDimensions,
		policy:     domain.DefaultRelevancePolicy(),
	}
}

// WithRedis configures the client to connect to a Redis instance with the
// search module (Redis 8+ or redis-stack). Valkey with valkey-search works
// over the same protocol.
func WithRedis(addr, password string) Option {
	return func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithRedisDB selects a logical database number.
func WithRedisDB(db int) Option {
	return func(c *clientConfig) {
		c.db = db
	}
}

// WithOpenAI configures the built-in OpenAI provider for embeddings and
// document summaries.
func WithOpenAI(apiKey string) Option {
	return func(c *clientConfig) {
		c.openaiAPIKey = apiKey
	}
}

// WithOpenAIBaseURL points the built-in provider at an OpenAI-compatible
// endpoint.
func WithOpenAIBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.openaiBaseURL = url
	}
}

// WithEmbeddingModel sets the embedding model and its vector dimension.
// Defaults to text-embedding-3-large at 3072 dimensions.
func WithEmbeddingModel(model string, dimensions int) Option {
	return func(c *clientConfig) {
		c.embedModel = model
		c.dimensions = dimensions
	}
}

// WithSummaryModel sets the chat model used for document summaries.
// Defaults to gpt-3.5-turbo.
func WithSummaryModel(model string) Option {
	return func(c *clientConfig) {
		c.summaryModel = model
	}
}

// WithEmbedder sets a custom embedding provider. Takes precedence over the
// built-in OpenAI provider; summaries then fall back to content previews
// unless WithOpenAI is also configured.
func WithEmbedder(e Embedder) Option {
	return func(c *clientConfig) {
		c.embedder = e
	}
}

// WithChunking sets the chunk window geometry in bytes. Overlap must be
// smaller than size. Defaults: 1000/200.
func WithChunking(size, overlap int) Option {
	return func(c *clientConfig) {
		c.chunkSize = size
		c.chunkOverlap = overlap
	}
}

// WithRelevancePolicy sets the two-tier score thresholds: results below
// primary are admitted from the secondary tier only while fewer than
// minResults passed. Defaults: 0.4 / 0.3 / 2.
func WithRelevancePolicy(primary, secondary float64, minResults int) Option {
	return func(c *clientConfig) {
		c.policy = domain.RelevancePolicy{
			Primary:    primary,
			Secondary:  secondary,
			MinResults: minResults,
		}
	}
}

// WithCacheTTL sets how long search results and embeddings stay cached.
// Zero keeps a default (10m search, 24h embeddings).
func WithCacheTTL(search, embedding time.Duration) Option {
	return func(c *clientConfig) {
		c.searchTTL = search
		c.embeddingTTL = embedding
	}
}

// WithFetchTimeout bounds a single document download. Default: 60s.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.fetchTimeout = d
	}
}

// WithPollInterval sets how often the background worker re-checks an empty
// queue. Default: 1s.
func WithPollInterval(d time.Duration) Option {
	return func(c *clientConfig) {
		c.poll = d
	}
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}
