package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"taskmanager/internal/config"
	"taskmanager/internal/notify"
	"taskmanager/internal/repository"
	"taskmanager/internal/service"
)

// The binary runs the reminder daemon: it initializes the store and
// periodically sweeps every user's reminders, handing due ones to the
// configured observers. Front ends talk to the same database through the
// service layer.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db := repository.NewDatabase(cfg.DatabasePath)
	if err := db.InitSchema(); err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db)
	reminderRepo := repository.NewReminderRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	console := notify.NewConsole(os.Stdout)
	var telegram *notify.Telegram
	if cfg.TelegramToken != "" {
		telegram, err = notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("telegram: %v", err)
		}
	}

	sweepAll := func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		for _, user := range userRepo.GetAll(jobCtx) {
			engine := service.NewReminderService(reminderRepo, settingsRepo, user.Username)
			engine.AddObserver(console)
			if telegram != nil && settingsRepo.Get(jobCtx, user.Username).AppNotificationsEnabled {
				engine.AddObserver(telegram)
			}
			if n := engine.Sweep(jobCtx); n > 0 {
				log.Printf("delivered %d reminder(s) for %s", n, user.Username)
			}
		}
	}

	scheduler := service.NewSchedulerService(time.Local)
	if _, err := scheduler.ScheduleSweep(cfg.SweepInterval, sweepAll); err != nil {
		log.Fatalf("schedule sweeps: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	log.Println("Task manager reminder daemon started.")
	<-ctx.Done()
	log.Println("Shutdown complete.")
}
