package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/viper"

	tomlrepo "github.com/avellar-dev/posture-coach/internal/adapters/repo/toml"
	"github.com/avellar-dev/posture-coach/internal/application"
	"github.com/avellar-dev/posture-coach/internal/ports"
)

type app struct {
	profiles ports.ProfileRepository
	manager  *application.SessionManager
	now      func() time.Time
}

func wireApp() (*app, error) {
	profiles, err := tomlrepo.NewRepository(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire profile repository: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	return &app{
		profiles: profiles,
		manager:  application.NewSessionManager(ports.SystemClock{}, logger, 0),
		now:      time.Now,
	}, nil
}
