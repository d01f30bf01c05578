package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/rescp17/slideCaster/internal/config"
	"github.com/rescp17/slideCaster/pkg/discovery"
	"github.com/rescp17/slideCaster/pkg/gm"
	"github.com/rescp17/slideCaster/pkg/peer"
	"github.com/rescp17/slideCaster/pkg/ui"
)

func main() {
	f, _ := os.OpenFile("debug.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close log file", "error", err)
		}
	}()
	log.SetOutput(f)
	slog.SetDefault(slog.New(slog.NewTextHandler(f, nil)))

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Bad configuration: %v\n", err)
		os.Exit(1)
	}

	var port int
	var session string
	var folders []string
	var hostAddr string

	cmd := &cobra.Command{
		Use:   "slidecaster",
		Short: "A synchronized tabletop image viewer for local networks",
	}

	cmd.PersistentFlags().IntVar(&port, "port", cfg.Port, "Port the session hub listens on")
	cmd.PersistentFlags().StringVar(&session, "session", cfg.Session, "Session name")

	hostCmd := &cobra.Command{
		Use:   "host",
		Short: "Host a session as the GM",
		Run: func(cmd *cobra.Command, args []string) {
			cfg.Port = port
			cfg.Session = session
			if len(folders) > 0 {
				cfg.Folders = folders
			}
			app := gm.NewApp(cfg, &discovery.MDNSAdapter{})
			runTUI(ui.InitialModel(ui.GM, app, cfg.Folders))
		},
	}
	hostCmd.Flags().StringArrayVar(&folders, "folder", nil, "Folder to browse for media (repeatable)")

	joinCmd := &cobra.Command{
		Use:   "join",
		Short: "Join a session as a viewer",
		Run: func(cmd *cobra.Command, args []string) {
			cfg.Port = port
			cfg.Session = session
			if hostAddr != "" {
				cfg.HostAddr = hostAddr
			}
			app := peer.NewApp(cfg, &discovery.MDNSAdapter{})
			runTUI(ui.InitialModel(ui.Peer, app, nil))
		},
	}
	joinCmd.Flags().StringVar(&hostAddr, "addr", "", "Host address (host:port); skips discovery")

	cmd.AddCommand(hostCmd)
	cmd.AddCommand(joinCmd)

	if err := fang.Execute(context.Background(), cmd); err != nil {
		os.Exit(1)
	}
}

func runTUI(model tea.Model) {
	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
