package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	urfave "github.com/urfave/cli/v3"

	"github.com/fairlens/fairlens/pkg/server"
)

const (
	serverShutdownWaitSeconds = 5
	serverTimeoutSeconds      = 300
	serverMaxHeaderBytes      = 20
)

var (
	portFlag = &urfave.IntFlag{
		Name:  "port",
		Usage: "Port on which the server will listen (defaults to config)",
	}

	serverCmd = &urfave.Command{
		Name:    "server",
		Aliases: []string{"s"},
		Usage:   "Start local HTTP audit server",
		Action:  cmdStartServer,
		Flags: []urfave.Flag{
			portFlag,
		},
	}
)

func cmdStartServer(_ context.Context, cmd *urfave.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	port := cfg.Port
	if cmd.IsSet(portFlag.Name) {
		port = int(cmd.Int(portFlag.Name))
	}
	address := fmt.Sprintf("127.0.0.1:%d", port)

	s := &http.Server{
		Addr:           address,
		Handler:        server.New(cfg).Router(),
		ReadTimeout:    serverTimeoutSeconds * time.Second,
		WriteTimeout:   serverTimeoutSeconds * time.Second,
		MaxHeaderBytes: 1 << serverMaxHeaderBytes,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("error starting server", "error", err)
		}
	}()

	slog.Info("server started", "address", address)

	<-done

	ctx, cancel := context.WithTimeout(context.Background(), serverShutdownWaitSeconds*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil && err != http.ErrServerClosed {
		slog.Error("error shutting down server", "error", err)
	}
	return nil
}
