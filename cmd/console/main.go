package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gemstone-shop/gemstone/internal/ai"
	"github.com/gemstone-shop/gemstone/internal/config"
	"github.com/gemstone-shop/gemstone/internal/logger"
	"github.com/gemstone-shop/gemstone/internal/models"
	"github.com/gemstone-shop/gemstone/internal/seed"
)

type menuAction struct {
	Key   string
	Label string
	Run   func() error
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("database init failed: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("database migration failed: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)
	seeder := seed.NewSeeder(models.DB, ai.NewClient(cfg.AI))
	seeder.Printf = func(format string, args ...interface{}) {
		fmt.Printf(format+"\n", args...)
	}
	seeder.Confirm = func(question string) bool {
		return confirm(reader, question)
	}

	ctx := context.Background()
	actions := []menuAction{
		{"1", "Populate database with sample data", seeder.PopulateSampleData},
		{"2", "Generate product categories using AI", func() error { return seeder.GenerateCategories(ctx) }},
		{"3", "Generate products for categories using AI", func() error { return seeder.GenerateProducts(ctx) }},
	}

	fmt.Println("== gemstone console")
	start := time.Now()
	fmt.Printf("= started at: %s\n", start.Format(time.RFC3339))

	for {
		fmt.Println()
		for _, action := range actions {
			fmt.Printf("  %s. %s\n", action.Key, action.Label)
		}
		fmt.Println("  q. Quit")
		fmt.Print("> ")

		line, err := reader.ReadString('\n')
		if err != nil {
			break
		}
		choice := strings.TrimSpace(line)
		if choice == "q" || choice == "Q" {
			break
		}

		var selected *menuAction
		for i := range actions {
			if actions[i].Key == choice {
				selected = &actions[i]
				break
			}
		}
		if selected == nil {
			fmt.Println("unknown option")
			continue
		}

		fmt.Printf("== %s\n", selected.Label)
		if err := selected.Run(); err != nil {
			fmt.Printf("error: %v\n", err)
		}
	}

	fmt.Printf("= finished at: %s\n", time.Now().Format(time.RFC3339))
	fmt.Printf("= elapsed: %s\n", time.Since(start).Round(time.Millisecond))
}

func confirm(reader *bufio.Reader, question string) bool {
	fmt.Printf("%s [Y/n] ", question)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "" || answer == "y" || answer == "yes"
}
