package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/OCharnyshevich/minecraft-client/internal/client/config"
	"github.com/OCharnyshevich/minecraft-client/internal/client/conn"
	"github.com/OCharnyshevich/minecraft-client/internal/client/game"
	"github.com/OCharnyshevich/minecraft-client/internal/client/packet"
	"github.com/OCharnyshevich/minecraft-client/internal/client/version"
)

func main() {
	cfg := config.DefaultConfig()

	var configPath string
	flag.StringVar(&configPath, "config", "client.yaml", "path to the YAML config file")
	flag.StringVar(&cfg.Username, "username", cfg.Username, "login username")
	flag.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory holding the version manifests")
	flag.BoolVar(&cfg.StatusOnly, "status-only", cfg.StatusOnly, "stop after the status/ping exchange")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <host> <port> <protocol-version>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := config.LoadFile(configPath, cfg); err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}
	// Flags given on the command line override the file: parse them again
	// over the values the file just set.
	flag.Parse()

	// Positional arguments override the file.
	args := flag.Args()
	if len(args) >= 3 {
		port, err := strconv.ParseUint(args[1], 10, 16)
		if err != nil {
			log.Error("invalid port", "port", args[1])
			os.Exit(2)
		}
		protocol, err := strconv.ParseInt(args[2], 10, 32)
		if err != nil {
			log.Error("invalid protocol version", "protocol", args[2])
			os.Exit(2)
		}
		cfg.Host = args[0]
		cfg.Port = uint16(port)
		cfg.Protocol = int32(protocol)
	} else if len(args) != 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(cfg, log); err != nil {
		var disconnect *conn.DisconnectError
		if errors.As(err, &disconnect) {
			log.Info("server closed the session", "reason", disconnect.Reason)
			return
		}
		log.Error("client error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	// The status exchange uses its own connection; the server does not
	// return from status to login.
	status, err := queryStatus(cfg, log)
	if err != nil {
		return err
	}
	log.Info("server status",
		"version", status.Version.Name,
		"protocol", status.Version.Protocol,
		"players", status.Players.Online,
		"max", status.Players.Max,
	)
	if cfg.StatusOnly {
		return nil
	}

	v, err := version.Load(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("load version manifests: %w", err)
	}

	c, err := conn.Dial(cfg.Host, cfg.Port, log)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.Handshake(cfg.Protocol, packet.NextStateLogin); err != nil {
		return err
	}
	if _, err := c.Login(cfg.Username, nil); err != nil {
		return err
	}

	g := game.NewGamestate()
	defer g.Close()
	g.Events.Chat = func(message string, _ bool) int {
		log.Info("chat", "message", message)
		return 0
	}
	g.Events.Death = func(message string) int {
		log.Info("death", "message", message)
		return 0
	}

	return c.Play(v, g)
}

func queryStatus(cfg *config.Config, log *slog.Logger) (*conn.ServerStatus, error) {
	c, err := conn.Dial(cfg.Host, cfg.Port, log)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	if err := c.Handshake(cfg.Protocol, packet.NextStateStatus); err != nil {
		return nil, err
	}
	status, err := c.Status()
	if err != nil {
		return nil, err
	}
	latency, err := c.Ping()
	if err != nil {
		return nil, err
	}
	log.Info("ping", "latency", latency)
	return status, nil
}
