package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/Ayush-Repositories/decyber-v2/internal/config"
	"github.com/Ayush-Repositories/decyber-v2/internal/database"
	"github.com/Ayush-Repositories/decyber-v2/internal/logger"
	"github.com/Ayush-Repositories/decyber-v2/internal/model"
	"github.com/Ayush-Repositories/decyber-v2/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	teamRepo := repository.NewTeamRepository(pool)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Team ===")

	// Name
	fmt.Print("Enter Team Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Println("Error: Team name is required")
		return
	}

	// Passcode
	fmt.Print("Enter Passcode: ")
	bytePasscode, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading passcode")
		return
	}
	passcode := string(bytePasscode)
	fmt.Println() // Newline after passcode input
	if len(passcode) < 4 {
		fmt.Println("Error: Passcode must be at least 4 characters")
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash passcode")
	}

	team := &model.Team{
		Name:         name,
		PasscodeHash: string(hash),
	}

	if err := teamRepo.Create(ctx, team); err != nil {
		log.Fatal().Err(err).Msg("Failed to create team")
	}

	fmt.Printf("\nSuccess! Team '%s' created with ID: %s\n", team.Name, team.ID)
}
