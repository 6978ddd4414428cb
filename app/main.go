package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blogwatch/app/api"
	"blogwatch/app/article"
	"blogwatch/app/cfg"
	"blogwatch/app/extract"
	"blogwatch/app/notify"
	"blogwatch/app/scan"
	"blogwatch/app/schedule"
	"blogwatch/app/sources"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	level := slog.LevelInfo
	if appCfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(appCfg); err != nil {
		slog.Error("Run failed", "error", err)
		os.Exit(1)
	}
}

func run(appCfg *cfg.Cfg) error {
	notifier := notify.NewNotifier(appCfg.TelegramToken, appCfg.TelegramChatID)

	// Helper modes exit before any scanning.
	switch {
	case appCfg.GetChatID:
		return printChatIDs(notifier, appCfg)
	case appCfg.TestNotification:
		if err := requireCredentials(appCfg); err != nil {
			return err
		}
		return notifier.SendMessage(context.Background(), "blogwatch test notification")
	}

	if !appCfg.DryRun {
		if err := requireCredentials(appCfg); err != nil {
			return err
		}
	}

	srcs, err := sources.NewLoader(appCfg.SourcesDir).LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load sources: %w", err)
	}
	if len(srcs) == 0 {
		return fmt.Errorf("no enabled sources found in %s", appCfg.SourcesDir)
	}
	slog.Info("Sources loaded", "count", len(srcs))

	client := extract.NewClient(&http.Client{}, appCfg.UserAgent)
	runner := scan.NewRunner(client)

	scanOnce := func(ctx context.Context) (int, []scan.SourceError, error) {
		cutoff, err := resolveCutoff(appCfg, time.Now())
		if err != nil {
			return 0, nil, err
		}
		slog.Info("Scan starting", "sources", len(srcs), "cutoff", cutoff.String())

		articles, sourceErrs := runner.Run(ctx, srcs, cutoff)

		if len(articles) == 0 {
			slog.Info("No new articles found")
			return 0, sourceErrs, nil
		}

		slog.Info("New articles found", "count", len(articles))

		if appCfg.DryRun {
			fmt.Println(notify.FormatMessage(articles))
			return len(articles), sourceErrs, nil
		}

		if err := notifier.Send(ctx, articles); err != nil {
			return len(articles), sourceErrs, fmt.Errorf("failed to send notification: %w", err)
		}
		return len(articles), sourceErrs, nil
	}

	switch {
	case appCfg.Serve:
		return serve(appCfg, scanOnce)
	case appCfg.CronSpec != "":
		return runCron(appCfg.CronSpec, scanOnce)
	default:
		_, _, err := scanOnce(context.Background())
		return err
	}
}

func requireCredentials(appCfg *cfg.Cfg) error {
	if appCfg.TelegramToken == "" || appCfg.TelegramChatID == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID are required")
	}
	return nil
}

func resolveCutoff(appCfg *cfg.Cfg, now time.Time) (article.Date, error) {
	if appCfg.Cutoff != "" {
		d, ok := article.NormalizeDate(appCfg.Cutoff)
		if !ok {
			return article.Date{}, fmt.Errorf("invalid cutoff date: %s", appCfg.Cutoff)
		}
		return d, nil
	}
	if appCfg.LookbackDays > 1 {
		return article.DateOf(now.UTC().AddDate(0, 0, -appCfg.LookbackDays)), nil
	}
	return article.DefaultCutoff(now), nil
}

func printChatIDs(notifier *notify.Notifier, appCfg *cfg.Cfg) error {
	if appCfg.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	chats, err := notifier.GetChatIDs(context.Background())
	if err != nil {
		return fmt.Errorf("failed to fetch chat IDs: %w", err)
	}
	if len(chats) == 0 {
		fmt.Println("No chats found. Send the bot a message first, then retry.")
		return nil
	}

	for _, chat := range chats {
		name := chat.Title
		if name == "" {
			name = chat.Username
		}
		fmt.Printf("%d\t%s\t%s\n", chat.ID, chat.Type, name)
	}
	return nil
}

func serve(appCfg *cfg.Cfg, scanFn api.ScanFunc) error {
	handler := api.NewHandler(scanFn, appCfg.Version)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // a scan runs inside the request
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown error: %w", err)
	}
	slog.Info("HTTP server stopped")

	return nil
}

func runCron(spec string, scanFn api.ScanFunc) error {
	scheduler, err := schedule.New(spec, func() {
		if _, _, err := scanFn(context.Background()); err != nil {
			slog.Error("Scheduled scan failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	scheduler.Start()
	defer scheduler.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	slog.Info("Received signal", "signal", sig.String())

	return nil
}
