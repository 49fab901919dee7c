package system

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/omayami/internal/cli"
	"github.com/julianstephens/omayami/internal/constants"
	"github.com/julianstephens/omayami/internal/keyring"
	"github.com/julianstephens/omayami/internal/logger"
	"github.com/julianstephens/omayami/internal/proxy"
)

type ServeCmd struct {
	Addr          string `help:"Listen address." env:"OMAYAMI_PROXY_ADDR" default:":8787"`
	AccessCode    string `help:"Shared access code clients must send. Falls back to the OS keyring." env:"ACCESS_CODE" name:"access-code"`
	OpenAIKey     string `help:"Upstream OpenAI API key. Falls back to the OS keyring." env:"OPENAI_API_KEY" name:"openai-key"`
	OpenAIBaseURL string `help:"Override the OpenAI API base URL." env:"OPENAI_BASE_URL" name:"openai-base-url"`
}

// Config resolves the proxy configuration, reading unset secrets from the keyring.
func (c *ServeCmd) Config() proxy.Config {
	return proxy.Config{
		AccessCode:    keyring.Lookup(c.AccessCode, constants.KeyringAccessCode),
		OpenAIKey:     keyring.Lookup(c.OpenAIKey, constants.KeyringOpenAIKey),
		OpenAIBaseURL: c.OpenAIBaseURL,
	}
}

func (c *ServeCmd) Run(_ *cli.Context) error {
	cfg := c.Config()
	if cfg.AccessCode == "" || cfg.OpenAIKey == "" {
		logger.Warn("Proxy configuration is incomplete; advice requests will fail until ACCESS_CODE and OPENAI_API_KEY are set")
	}

	gin.SetMode(gin.ReleaseMode)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return proxy.NewServer(c.Addr, proxy.NewRouter(proxy.NewHandler(cfg))).Run(ctx)
}
