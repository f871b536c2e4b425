package cmd

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/cofounder-match/internal/founders"
	"github.com/spigell/cofounder-match/internal/secrets"
)

const tokenEnv = "COFOUNDER_TOKEN"

// newSource builds the founder source the config points to. A profiles file
// wins over the API when both are somehow set.
func newSource(ctx context.Context, config *Config, lg *zap.Logger) (founders.Source, error) {
	if config == nil || config.Source == nil {
		return nil, errors.New("source is not configured")
	}

	if file := strings.TrimSpace(config.Source.File); file != "" {
		lg.Info("reading founders from file", zap.String("path", file))
		return founders.NewFileSource(file, lg)
	}

	api := config.Source.API
	if api == nil || strings.TrimSpace(api.URL) == "" {
		return nil, errors.New("either source.file or source.api.url is required")
	}

	token, err := resolveToken(api)
	if err != nil {
		return nil, err
	}

	client := founders.New(ctx, lg, api.URL, token)
	if api.MaxRetries != nil {
		client.MaxRetries = *api.MaxRetries
	}

	lg.Info("reading founders from api", zap.String("url", client.APIURL))
	return client, nil
}

func resolveToken(api *APIConfig) (string, error) {
	tokenFile := strings.TrimSpace(api.TokenFile)
	if tokenFile == "" {
		tokenFile = strings.TrimSpace(viper.GetString("source.api.token-file"))
	}

	return secrets.Load(secrets.Source{
		Name: "api token",
		File: tokenFile,
		Env:  tokenEnv,
	})
}
