package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// ErrCredentialMissing 表示没有可用的大模型凭证，服务必须在接收用户输入前退出。
var ErrCredentialMissing = errors.New("llm credential missing")

// Config 聚合整个服务的配置项。
type Config struct {
	Server ServerConfig
	AI     AIConfig
	Crisis CrisisConfig
	Log    LogConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}
	if err := ai.Validate(); err != nil {
		return nil, err
	}

	return &Config{
		Server: server,
		AI:     ai,
		Crisis: loadCrisisConfig(),
		Log:    LogConfig{Level: getEnvOrDefault("LOG_LEVEL", "info")},
	}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// Provider 选择回复生成所用的大模型后端。
type Provider string

const (
	// ProviderOpenAI talks to any OpenAI-compatible chat completions endpoint.
	ProviderOpenAI Provider = "openai"
	// ProviderGemini uses the native Google GenAI SDK.
	ProviderGemini Provider = "gemini"
	// ProviderArk runs an eino chain over a Volcengine Ark chat model.
	ProviderArk Provider = "ark"
)

const (
	defaultOpenAIBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	defaultArkBaseURL    = "https://ark.cn-beijing.volces.com/api/v3"
	defaultModel         = "gemini-2.0-flash"
)

// AIConfig 描述大模型相关配置。
type AIConfig struct {
	Provider     Provider
	APIKey       string
	AccessKey    string
	SecretKey    string
	Model        string
	BaseURL      string
	Region       string
	Temperature  float64
	MaxTokens    int
	Timeout      time.Duration
	HistoryLimit int
}

// Enabled 表示是否提供了必需的密钥。
func (c AIConfig) Enabled() bool {
	if c.Model == "" {
		return false
	}
	if c.Provider == ProviderArk {
		return c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != "")
	}
	return c.APIKey != ""
}

// Validate 检查凭证与生成参数，凭证缺失时返回 ErrCredentialMissing。
func (c AIConfig) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderGemini, ProviderArk:
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.Provider)
	}

	if !c.Enabled() {
		return fmt.Errorf("%w: provider %s needs an API key and model", ErrCredentialMissing, c.Provider)
	}
	if strings.ContainsAny(c.APIKey, " \t\r\n") {
		return fmt.Errorf("%w: API key contains whitespace", ErrCredentialMissing)
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("invalid LLM_TEMPERATURE %.2f: must be within [0, 2]", c.Temperature)
	}
	if c.MaxTokens < 1 {
		return fmt.Errorf("invalid LLM_MAX_TOKENS %d: must be positive", c.MaxTokens)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid LLM_TIMEOUT_SECONDS: must be positive")
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("invalid LLM_HISTORY_LIMIT %d: must not be negative", c.HistoryLimit)
	}
	return nil
}

// NewChatModel 使用配置创建一个 Ark 模型实例。
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if c.Provider != ProviderArk || !c.Enabled() {
		return nil, fmt.Errorf("%w: Ark 凭证或模型配置缺失，至少提供 ARK_API_KEY + Model 或 AK/SK 组合", ErrCredentialMissing)
	}

	temperature := float32(c.Temperature)
	maxTokens := c.MaxTokens

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   &maxTokens,
		Temperature: &temperature,
		Timeout:     &c.Timeout,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	provider := Provider(strings.ToLower(getEnvOrDefault("LLM_PROVIDER", string(ProviderOpenAI))))

	temperature, err := parseOptionalFloatEnv("LLM_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("LLM_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	timeoutSeconds, err := parseOptionalIntEnv("LLM_TIMEOUT_SECONDS")
	if err != nil {
		return AIConfig{}, err
	}

	historyLimit, err := parseOptionalIntEnv("LLM_HISTORY_LIMIT")
	if err != nil {
		return AIConfig{}, err
	}

	cfg := AIConfig{
		Provider:     provider,
		APIKey:       firstNonEmpty(os.Getenv("LLM_API_KEY"), os.Getenv("GOOGLE_AI_API_KEY")),
		Model:        firstNonEmpty(os.Getenv("LLM_MODEL"), defaultModel),
		BaseURL:      strings.TrimSpace(os.Getenv("LLM_BASE_URL")),
		Temperature:  derefOr(temperature, 0.7),
		MaxTokens:    derefOr(maxTokens, 500),
		Timeout:      time.Duration(derefOr(timeoutSeconds, 30)) * time.Second,
		HistoryLimit: derefOr(historyLimit, 10),
	}

	switch provider {
	case ProviderOpenAI:
		if cfg.BaseURL == "" {
			cfg.BaseURL = defaultOpenAIBaseURL
		}
	case ProviderArk:
		cfg.APIKey = firstNonEmpty(os.Getenv("LLM_API_KEY"), os.Getenv("ARK_API_KEY"))
		cfg.AccessKey = strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY"))
		cfg.SecretKey = strings.TrimSpace(os.Getenv("ARK_SECRET_KEY"))
		// Ark 的模型是接入点 ID，没有合理的默认值。
		cfg.Model = firstNonEmpty(os.Getenv("LLM_MODEL"), os.Getenv("Model"))
		cfg.Region = getEnvOrDefault("ARK_REGION", "cn-beijing")
		if cfg.BaseURL == "" {
			cfg.BaseURL = defaultArkBaseURL
		}
	}

	return cfg, nil
}

// CrisisConfig 描述危机资源的地区设置。
type CrisisConfig struct {
	Locale        string
	ResourcesFile string
}

func loadCrisisConfig() CrisisConfig {
	return CrisisConfig{
		Locale:        strings.ToLower(getEnvOrDefault("CRISIS_LOCALE", "ke")),
		ResourcesFile: strings.TrimSpace(os.Getenv("CRISIS_RESOURCES_FILE")),
	}
}

// LogConfig 描述日志级别。
type LogConfig struct {
	Level string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func derefOr[T any](ptr *T, fallback T) T {
	if ptr == nil {
		return fallback
	}
	return *ptr
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
