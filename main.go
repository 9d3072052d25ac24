package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Govind-619/TripSphere/config"
	"github.com/Govind-619/TripSphere/models"
	"github.com/Govind-619/TripSphere/routes"
	"github.com/Govind-619/TripSphere/utils"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tripsphere",
		Short: "TripSphere travel marketplace backend",
		// Running the binary without a subcommand starts the server
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(analyzeLogsCmd())
	rootCmd.AddCommand(grantRoleCmd())
	rootCmd.AddCommand(issueTokenCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads configuration, the logger and the database connection
func bootstrap() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := utils.InitLogger("logs"); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := config.InitDB(cfg); err != nil {
		utils.LogError("Database connection failed: %v", err)
		return nil, err
	}
	return cfg, nil
}

func runServe() error {
	cfg, err := bootstrap()
	if err != nil {
		return err
	}
	defer utils.SyncLogger()

	if err := config.Migrate(config.DB); err != nil {
		utils.LogError("Migration failed: %v", err)
		return err
	}
	if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
		utils.LogWarn("Razorpay credentials are not set, payment endpoints will fail")
	}
	if cfg.AIGatewayKey == "" {
		utils.LogWarn("LOVABLE_API_KEY is not set, the assistant will fail")
	}

	router := routes.SetupRouter()

	utils.LogInfo("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		utils.LogError("Error starting server: %v", err)
		return err
	}
	return nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := bootstrap(); err != nil {
				return err
			}
			defer utils.SyncLogger()
			if err := config.Migrate(config.DB); err != nil {
				return err
			}
			fmt.Println("Migration complete")
			return nil
		},
	}
}

func analyzeLogsCmd() *cobra.Command {
	var dir, date string
	cmd := &cobra.Command{
		Use:   "analyze-logs",
		Short: "Summarize a day's payment, order and chat failures from the log files",
		RunE: func(cmd *cobra.Command, args []string) error {
			day := time.Now()
			if date != "" {
				parsed, err := time.Parse(time.DateOnly, date)
				if err != nil {
					return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", date)
				}
				day = parsed
			}
			stats, err := utils.AnalyzeLogs(dir, day)
			if err != nil {
				return err
			}
			stats.WriteReport(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "./logs", "log directory")
	cmd.Flags().StringVar(&date, "date", "", "day to analyze (YYYY-MM-DD, default today)")
	return cmd
}

func grantRoleCmd() *cobra.Command {
	var userID, role string
	cmd := &cobra.Command{
		Use:   "grant-role",
		Short: "Grant a role (traveler, organizer, admin) to a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch role {
			case models.RoleTraveler, models.RoleOrganizer, models.RoleAdmin:
			default:
				return fmt.Errorf("unknown role %q", role)
			}
			if _, err := bootstrap(); err != nil {
				return err
			}
			defer utils.SyncLogger()
			if err := utils.GrantRole(config.DB, userID, role); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Granted %s to %s\n", role, userID)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id")
	cmd.Flags().StringVar(&role, "role", models.RoleAdmin, "role to grant")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func issueTokenCmd() *cobra.Command {
	var userID, email string
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "issue-token",
		Short: "Sign an access token for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if cfg.IsProduction() {
				return fmt.Errorf("issue-token is disabled in production")
			}
			if cfg.JWTSecret == "" {
				return fmt.Errorf("JWT_SECRET is not set")
			}
			token, err := utils.GenerateToken(userID, email, cfg.JWTSecret, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id")
	cmd.Flags().StringVar(&email, "email", "", "user email")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
