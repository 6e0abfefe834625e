// Command seed fills the database with demo data for local development: an
// admin account, a handful of customers, the service catalog, a month of
// slots, staff and inventory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"washbay/internal/auth"
	"washbay/internal/config"
	"washbay/internal/database"
	"washbay/internal/models"
	"washbay/internal/schedule"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	var (
		customers = flag.Int("customers", 10, "number of demo customers")
		days      = flag.Int("days", 30, "days of slots to generate")
		seed      = flag.Uint64("seed", 0, "faker seed, 0 for random")
	)
	flag.Parse()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if *seed != 0 {
		if err := gofakeit.Seed(*seed); err != nil {
			return err
		}
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if err := seedUsers(ctx, db, cfg, *customers); err != nil {
		return err
	}
	services, err := seedServices(ctx, db)
	if err != nil {
		return err
	}
	if err := seedSlots(ctx, db, cfg, services, *days); err != nil {
		return err
	}
	if err := seedStaff(ctx, db); err != nil {
		return err
	}
	if err := seedInventory(ctx, db); err != nil {
		return err
	}

	logger.Info().Msg("seed complete")
	return nil
}

func seedUsers(ctx context.Context, db *database.DB, cfg *config.Config, customers int) error {
	adminHash, err := auth.HashPassword("admin12345", cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}
	admin := &models.User{
		Name:         "Admin",
		Email:        "admin@washbay.local",
		PasswordHash: adminHash,
		Role:         models.RoleAdmin,
	}
	if err := db.CreateUser(ctx, admin); err != nil && err != database.ErrEmailTaken {
		return fmt.Errorf("seed admin: %w", err)
	}

	for i := 0; i < customers; i++ {
		hash, err := auth.HashPassword(gofakeit.Password(true, true, true, false, false, 12), cfg.Auth.BcryptCost)
		if err != nil {
			return err
		}
		user := &models.User{
			Name:         gofakeit.Name(),
			Email:        gofakeit.Email(),
			PasswordHash: hash,
			Phone:        gofakeit.Phone(),
			Role:         models.RoleCustomer,
		}
		if err := db.CreateUser(ctx, user); err != nil && err != database.ErrEmailTaken {
			return fmt.Errorf("seed customer: %w", err)
		}
	}
	return nil
}

func seedServices(ctx context.Context, db *database.DB) ([]*models.Service, error) {
	catalog := []*models.Service{
		{Name: "Exterior wash", Description: "Foam wash, rinse and dry", Price: 25, DurationMinutes: 30, Category: "wash"},
		{Name: "Full wash", Description: "Exterior plus interior vacuum", Price: 45, DurationMinutes: 60, Category: "wash"},
		{Name: "Wax and polish", Description: "Hand wax with machine polish", Price: 90, DurationMinutes: 90, Category: "detailing"},
		{Name: "Interior detailing", Description: "Deep clean of seats and trim", Price: 150, DurationMinutes: 120, Category: "detailing"},
	}
	for _, svc := range catalog {
		svc.IsActive = true
		if err := db.CreateService(ctx, svc); err != nil {
			return nil, fmt.Errorf("seed service %q: %w", svc.Name, err)
		}
	}
	return catalog, nil
}

func seedSlots(ctx context.Context, db *database.DB, cfg *config.Config, services []*models.Service, days int) error {
	for _, svc := range services {
		tmpl := schedule.DayTemplate{
			OpenTime:        cfg.Slots.OpenTime,
			CloseTime:       cfg.Slots.CloseTime,
			DurationMinutes: svc.DurationMinutes,
		}
		created, err := db.GenerateSlots(ctx, svc.ID, time.Now(), days, tmpl)
		if err != nil {
			return fmt.Errorf("seed slots for %q: %w", svc.Name, err)
		}
		log.Printf("service %q: %d slots", svc.Name, created)
	}
	return nil
}

func seedStaff(ctx context.Context, db *database.DB) error {
	roles := []string{"washer", "washer", "detailer", "supervisor"}
	for _, role := range roles {
		member := &models.StaffMember{
			Name:     gofakeit.Name(),
			Role:     role,
			Phone:    gofakeit.Phone(),
			Email:    gofakeit.Email(),
			IsActive: true,
		}
		if err := db.CreateStaff(ctx, member); err != nil {
			return fmt.Errorf("seed staff: %w", err)
		}
	}
	return nil
}

func seedInventory(ctx context.Context, db *database.DB) error {
	items := []*models.InventoryItem{
		{Name: "Car shampoo", Quantity: 40, Unit: "liters", LowStockThreshold: 10},
		{Name: "Wax", Quantity: 15, Unit: "liters", LowStockThreshold: 5},
		{Name: "Microfiber towels", Quantity: 200, Unit: "pieces", LowStockThreshold: 50},
		{Name: "Interior cleaner", Quantity: 25, Unit: "liters", LowStockThreshold: 8},
	}
	for _, item := range items {
		if err := db.CreateInventoryItem(ctx, item); err != nil {
			return fmt.Errorf("seed inventory %q: %w", item.Name, err)
		}
	}
	return nil
}
