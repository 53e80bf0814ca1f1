package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Source kinds understood by the news scraper
const (
	SourceRSS  = "rss"
	SourceHTML = "html"
)

// Sentiment providers
const (
	ProviderLexicon     = "LEXICON"
	ProviderHuggingFace = "HUGGINGFACE"
	ProviderNone        = "NONE"
)

type NewsSource struct {
	Name string `yaml:"name"`
	// URL may contain {name}, replaced by the lower-cased asset name
	URL       string `yaml:"url"`
	Kind      string `yaml:"kind"`
	Enabled   *bool  `yaml:"enabled"`
	Limit     int    `yaml:"limit"`
	Selectors struct {
		ArticleContainer string `yaml:"article_container"`
		Title            string `yaml:"title"`
		URL              string `yaml:"url"`
	} `yaml:"selectors"`
}

func (s NewsSource) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"server"`
	Market struct {
		BaseURL           string            `yaml:"base_url"`
		VsCurrency        string            `yaml:"vs_currency"`
		QuoteCurrencies   []string          `yaml:"quote_currencies"`
		HistoryDays       int               `yaml:"history_days"`
		TimeoutSeconds    int               `yaml:"timeout_seconds"`
		RequestsPerSecond float64           `yaml:"requests_per_second"`
		CatalogTTLMinutes int               `yaml:"catalog_ttl_minutes"`
		PriorityIDs       map[string]string `yaml:"priority_ids"`
	} `yaml:"market"`
	Indicators struct {
		RSIPeriod  int `yaml:"rsi_period"`
		MACDFast   int `yaml:"macd_fast"`
		MACDSlow   int `yaml:"macd_slow"`
		MACDSignal int `yaml:"macd_signal"`
	} `yaml:"indicators"`
	News struct {
		MaxHeadlines     int          `yaml:"max_headlines"`
		GeneralPerSource int          `yaml:"general_per_source"`
		TimeoutSeconds   int          `yaml:"timeout_seconds"`
		Sources          []NewsSource `yaml:"sources"`
		GeneralSources   []NewsSource `yaml:"general_sources"`
	} `yaml:"news"`
	Sentiment struct {
		Provider       string `yaml:"provider"`
		Model          string `yaml:"model"`
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"sentiment"`

	Secrets Secrets `yaml:"-"`
}

// Secrets are read from the environment only
type Secrets struct {
	CoinGeckoAPIKey string `envconfig:"COINGECKO_API_KEY"`
	HFToken         string `envconfig:"HF_API_TOKEN"`
}

// Overrides lets deployments adjust a few settings without editing config.yaml
type Overrides struct {
	Port              int    `envconfig:"PORT"`
	SentimentProvider string `envconfig:"SENTIMENT_PROVIDER"`
	MarketBaseURL     string `envconfig:"MARKET_BASE_URL"`
}

func DefaultConfig() *Config {
	var c Config
	c.applyDefaults()
	return &c
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}

	if c.Market.BaseURL == "" {
		c.Market.BaseURL = "https://api.coingecko.com/api/v3"
	}
	if c.Market.VsCurrency == "" {
		c.Market.VsCurrency = "usd"
	}
	if len(c.Market.QuoteCurrencies) == 0 {
		c.Market.QuoteCurrencies = []string{"usd", "cad"}
	}
	if c.Market.HistoryDays == 0 {
		c.Market.HistoryDays = 30
	}
	if c.Market.TimeoutSeconds == 0 {
		c.Market.TimeoutSeconds = 15
	}
	if c.Market.RequestsPerSecond == 0 {
		c.Market.RequestsPerSecond = 0.5
	}
	if c.Market.CatalogTTLMinutes == 0 {
		c.Market.CatalogTTLMinutes = 60
	}
	if c.Market.PriorityIDs == nil {
		c.Market.PriorityIDs = DefaultPriorityIDs()
	}

	if c.Indicators.RSIPeriod == 0 {
		c.Indicators.RSIPeriod = 14
	}
	if c.Indicators.MACDFast == 0 {
		c.Indicators.MACDFast = 12
	}
	if c.Indicators.MACDSlow == 0 {
		c.Indicators.MACDSlow = 26
	}
	if c.Indicators.MACDSignal == 0 {
		c.Indicators.MACDSignal = 9
	}

	if c.News.MaxHeadlines == 0 {
		c.News.MaxHeadlines = 5
	}
	if c.News.GeneralPerSource == 0 {
		c.News.GeneralPerSource = 5
	}
	if c.News.TimeoutSeconds == 0 {
		c.News.TimeoutSeconds = 15
	}
	if len(c.News.Sources) == 0 {
		c.News.Sources = DefaultSources()
	}
	if len(c.News.GeneralSources) == 0 {
		c.News.GeneralSources = DefaultGeneralSources()
	}
	for i := range c.News.Sources {
		if c.News.Sources[i].Kind == "" {
			c.News.Sources[i].Kind = SourceRSS
		}
	}
	for i := range c.News.GeneralSources {
		if c.News.GeneralSources[i].Kind == "" {
			c.News.GeneralSources[i].Kind = SourceRSS
		}
	}

	if c.Sentiment.Provider == "" {
		c.Sentiment.Provider = ProviderLexicon
	}
	c.Sentiment.Provider = strings.ToUpper(c.Sentiment.Provider)
	if c.Sentiment.Model == "" {
		c.Sentiment.Model = "distilbert/distilbert-base-uncased-finetuned-sst-2-english"
	}
	if c.Sentiment.BaseURL == "" {
		c.Sentiment.BaseURL = "https://api-inference.huggingface.co/models"
	}
	if c.Sentiment.TimeoutSeconds == 0 {
		c.Sentiment.TimeoutSeconds = 20
	}
}

// DefaultPriorityIDs maps popular tickers straight to CoinGecko ids
func DefaultPriorityIDs() map[string]string {
	return map[string]string{
		"btc": "bitcoin", "eth": "ethereum", "xrp": "ripple", "ada": "cardano",
		"sol": "solana", "bnb": "binancecoin", "doge": "dogecoin", "ltc": "litecoin",
		"dot": "polkadot", "pol": "polygon", "dash": "dash", "etc": "ethereum-classic",
	}
}

func DefaultSources() []NewsSource {
	disabled := false
	coindesk := NewsSource{
		Name:    "Coindesk",
		URL:     "https://www.coindesk.com/search?query={name}",
		Kind:    SourceHTML,
		Enabled: &disabled,
	}
	coindesk.Selectors.ArticleContainer = "div.searchResults article, div[data-module='search-result']"
	coindesk.Selectors.Title = "h6, h3"
	coindesk.Selectors.URL = "a"
	return []NewsSource{
		{Name: "Cointelegraph", URL: "https://cointelegraph.com/rss/tag/{name}", Kind: SourceRSS},
		{Name: "Bitcoin.com", URL: "https://news.bitcoin.com/feed/?s={name}", Kind: SourceRSS},
		coindesk,
	}
}

func DefaultGeneralSources() []NewsSource {
	return []NewsSource{
		{Name: "Cointelegraph", URL: "https://cointelegraph.com/rss", Kind: SourceRSS},
		{Name: "Bitcoin.com", URL: "https://news.bitcoin.com/feed/", Kind: SourceRSS},
		{Name: "Decrypt", URL: "https://decrypt.co/feed", Kind: SourceRSS},
		{Name: "CryptoSlate", URL: "https://cryptoslate.com/feed/", Kind: SourceRSS},
	}
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Market.HistoryDays <= 0 {
		return fmt.Errorf("market.history_days must be positive, got %d", c.Market.HistoryDays)
	}
	if c.Market.RequestsPerSecond < 0 {
		return fmt.Errorf("market.requests_per_second cannot be negative, got %.2f", c.Market.RequestsPerSecond)
	}
	if c.Indicators.MACDFast >= c.Indicators.MACDSlow {
		return fmt.Errorf("indicators.macd_fast (%d) must be below macd_slow (%d)", c.Indicators.MACDFast, c.Indicators.MACDSlow)
	}
	if c.News.MaxHeadlines <= 0 {
		return errors.New("news.max_headlines must be positive")
	}
	for _, src := range append(append([]NewsSource{}, c.News.Sources...), c.News.GeneralSources...) {
		if src.Name == "" || src.URL == "" {
			return errors.New("news sources need both name and url")
		}
		if src.Kind != SourceRSS && src.Kind != SourceHTML {
			return fmt.Errorf("news source '%s': kind must be 'rss' or 'html', got '%s'", src.Name, src.Kind)
		}
		if src.Kind == SourceHTML && src.Selectors.ArticleContainer == "" {
			return fmt.Errorf("news source '%s': html sources need selectors.article_container", src.Name)
		}
	}
	switch c.Sentiment.Provider {
	case ProviderLexicon, ProviderHuggingFace, ProviderNone:
	default:
		return fmt.Errorf("sentiment.provider must be 'LEXICON', 'HUGGINGFACE' or 'NONE', got '%s'", c.Sentiment.Provider)
	}
	return nil
}

// LoadConfig reads path, falling back to defaults when the file does not exist,
// then applies TRENDFORGE_* environment overrides and secrets.
func LoadConfig(path string) (*Config, error) {
	var c Config
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}

func (c *Config) applyEnv() error {
	var o Overrides
	if err := envconfig.Process("TRENDFORGE", &o); err != nil {
		return fmt.Errorf("failed to read environment overrides: %w", err)
	}
	if o.Port != 0 {
		c.Server.Port = o.Port
	}
	if o.SentimentProvider != "" {
		c.Sentiment.Provider = o.SentimentProvider
	}
	if o.MarketBaseURL != "" {
		c.Market.BaseURL = o.MarketBaseURL
	}

	// secrets keep their conventional unprefixed names
	if err := envconfig.Process("", &c.Secrets); err != nil {
		return fmt.Errorf("failed to read secrets: %w", err)
	}
	return nil
}
