// Command createuser creates a login account, optionally with a health
// profile, so the assistant can be used without a separate signup flow.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/healthassistant/hub/internal/config"
	"github.com/healthassistant/hub/internal/models"
	"github.com/healthassistant/hub/internal/repository"
	"github.com/healthassistant/hub/pkg/database"
)

func main() {
	name := flag.String("name", "", "username (required)")
	password := flag.String("password", "", "password (required)")
	role := flag.String("role", models.RoleUser, "role: user or admin")
	age := flag.Int("age", 0, "profile: age (0 = unset)")
	gender := flag.String("gender", "", "profile: gender")
	condition := flag.String("condition", "", "profile: medical condition")
	bloodGroup := flag.String("blood-group", "", "profile: blood group")
	flag.Parse()

	if *name == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	if *role != models.RoleUser && *role != models.RoleAdmin {
		slog.Error("Invalid role", "role", *role)
		os.Exit(2)
	}

	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialize database connection
	db, err := database.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("Failed to hash password", "error", err)
		os.Exit(1)
	}

	usersRepo := repository.NewUsersRepository(db)

	user, err := usersRepo.Create(ctx, *name, *role, string(hash))
	if err != nil {
		slog.Error("Failed to create user", "error", err)
		os.Exit(1)
	}

	profile := profileFromFlags(user.ID, *age, *gender, *condition, *bloodGroup)
	if profile != nil {
		if err := repository.NewProfilesRepository(db).Upsert(ctx, profile); err != nil {
			slog.Error("Failed to create health profile", "error", err)
			os.Exit(1)
		}
	}

	fmt.Println("✓ User created!")
	fmt.Println()
	fmt.Println("ID:", user.ID)
	fmt.Println("Name:", user.Name)
	fmt.Println("Role:", user.Role)
	fmt.Println("Profile:", profile != nil)
	fmt.Println()
	fmt.Println("Example login:")
	fmt.Printf("curl -X POST -H \"Content-Type: application/json\" \\\n")
	fmt.Printf("  -d '{\"username\":%q,\"password\":\"<password>\"}' \\\n", user.Name)
	fmt.Printf("  http://localhost:8080/v1/auth/login\n")
}

// profileFromFlags returns nil when no profile flag was given.
func profileFromFlags(userID int64, age int, gender, condition, bloodGroup string) *models.HealthProfile {
	if age <= 0 && gender == "" && condition == "" && bloodGroup == "" {
		return nil
	}

	p := &models.HealthProfile{UserID: userID}

	if age > 0 {
		p.Age = &age
	}

	if gender != "" {
		p.Gender = &gender
	}

	if condition != "" {
		p.Condition = &condition
	}

	if bloodGroup != "" {
		p.BloodGroup = &bloodGroup
	}

	return p
}
