package main

import (
	"context"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bankcore/internal/config"
	"bankcore/internal/db"
	"bankcore/internal/model"
	"bankcore/internal/repository"
)

const seedBcryptCost = 8

type seedUser struct {
	Username string
	Password string
	Role     model.Role
	Opening  string // opening deposit, empty for none
}

var seedUsers = []seedUser{
	{Username: "alice", Password: "alice123", Role: model.RoleCustomer, Opening: "250.00"},
	{Username: "bob", Password: "bob123", Role: model.RoleCustomer, Opening: "75.50"},
	{Username: "carol", Password: "carol123", Role: model.RoleCustomer, Opening: ""},
	{Username: "teller", Password: "teller123", Role: model.RoleBanker, Opening: ""},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.LedgerEntry{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	ledgerRepo := repository.NewLedgerRepository(gormDB)

	created := 0
	skipped := 0
	for _, su := range seedUsers {
		existing, err := userRepo.FindByUsername(ctx, su.Username)
		if err != nil && err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to look up %s: %v", su.Username, err)
		}
		if existing != nil {
			skipped++
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(su.Password), seedBcryptCost)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", su.Username, err)
		}

		user := &model.User{
			Username:     su.Username,
			PasswordHash: string(hashed),
			Role:         su.Role,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create %s: %v", su.Username, err)
		}

		if su.Opening != "" {
			amount, err := decimal.NewFromString(su.Opening)
			if err != nil {
				log.Fatalf("Bad opening amount for %s: %v", su.Username, err)
			}
			entry := &model.LedgerEntry{
				UserID:  user.ID,
				Kind:    model.EntryKindDeposit,
				Amount:  amount,
				Balance: amount, // first entry, balance equals the deposit
			}
			if err := ledgerRepo.Append(ctx, entry); err != nil {
				log.Fatalf("Failed to seed opening deposit for %s: %v", su.Username, err)
			}
		}
		created++
	}

	log.Printf("Seed complete: %d created, %d already present", created, skipped)
}
