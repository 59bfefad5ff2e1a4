// Command bootstrap creates an admin account from the terminal. It is
// meant for operators locked out of the web UI, e.g. after the last
// admin was deactivated.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"syscall"

	"golang.org/x/term"

	"github.com/dsantanna/quizdeck/internal/server/config"
	"github.com/dsantanna/quizdeck/internal/server/models"
	"github.com/dsantanna/quizdeck/internal/server/repositories/repomanager"
	"github.com/dsantanna/quizdeck/internal/server/services"
	"github.com/dsantanna/quizdeck/internal/server/shared/db"
)

func main() {

	name := flag.String("n", "Administrator", "admin display name")
	email := flag.String("e", "", "admin email (required)")
	flag.Parse()

	if *email == "" {
		flag.Usage()
		os.Exit(2)
	}

	password, err := readPassword()
	if err != nil {
		log.Fatalf("password read error: %v", err)
	}

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	conn, err := db.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer conn.Close()

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, conn); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	us := services.NewUserService(conn, m, cfg)

	user, err := us.Create(ctx, *name, *email, password, models.RoleAdmin)
	if err != nil {
		log.Fatalf("admin create error: %v", err)
	}

	fmt.Printf("admin %s (%s) created\n", user.Email, user.ID)
}

func readPassword() (string, error) {
	fmt.Print("Password: ")
	first, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}

	fmt.Print("Repeat password: ")
	second, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}

	if string(first) != string(second) {
		return "", fmt.Errorf("passwords do not match")
	}
	if len(first) == 0 {
		return "", fmt.Errorf("password must not be empty")
	}

	return string(first), nil
}
