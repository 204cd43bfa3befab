package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Lumos-Labs-HQ/knights/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	sqliteFlag     bool
	postgresqlFlag bool
	mysqlFlag      bool
)

var envTemplates = map[string]string{
	"postgresql": `POSTGRES_IP=localhost
POSTGRES_PORT=5432
POSTGRES_DB=knights
POSTGRES_USER=postgres
POSTGRES_PASS=postgres
`,
	"mysql": `DATABASE_URL=root:password@tcp(localhost:3306)/knights
`,
	"sqlite": `DATABASE_URL=knights.db
`,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config and .env",
	Long:  `Write ` + config.FileName + ` and add connection settings to .env.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		provider := "postgresql"
		flagCount := 0

		if sqliteFlag {
			provider = "sqlite"
			flagCount++
		}
		if postgresqlFlag {
			provider = "postgresql"
			flagCount++
		}
		if mysqlFlag {
			provider = "mysql"
			flagCount++
		}

		if flagCount > 1 {
			return fmt.Errorf("please specify only one database type (--sqlite, --postgresql, or --mysql)")
		}

		if err := config.WriteDefault(config.FileName, provider); err != nil {
			return err
		}
		if err := handleEnvFile(".env", envTemplates[provider]); err != nil {
			return fmt.Errorf("failed to handle .env file: %w", err)
		}

		color.Green("✅ Initialized knights for %s", provider)
		fmt.Println()
		fmt.Println("📝 Files written:")
		fmt.Printf("   %s\n", config.FileName)
		fmt.Println("   .env")
		fmt.Println()
		fmt.Printf("🚀 Next steps:\n")
		fmt.Printf("   knights create   # Create all tables\n")
		fmt.Printf("   knights seed     # Load the sample data\n")
		fmt.Printf("   knights console  # Open the interactive console\n")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&sqliteFlag, "sqlite", false, "Initialize for SQLite")
	initCmd.Flags().BoolVar(&postgresqlFlag, "postgresql", false, "Initialize for PostgreSQL")
	initCmd.Flags().BoolVar(&mysqlFlag, "mysql", false, "Initialize for MySQL")
}

// handleEnvFile appends the template to an existing .env unless connection
// settings are already there.
func handleEnvFile(envPath, defaultEnvContent string) error {
	existingContent, err := os.ReadFile(envPath)
	if err != nil {
		if os.IsNotExist(err) {
			return os.WriteFile(envPath, []byte(defaultEnvContent), 0644)
		}
		return err
	}

	existingStr := string(existingContent)
	if strings.Contains(existingStr, "DATABASE_URL") || strings.Contains(existingStr, "POSTGRES_IP") {
		return nil
	}

	if len(existingStr) > 0 && !strings.HasSuffix(existingStr, "\n") {
		existingStr += "\n"
	}

	existingStr += "\n# Added by knights\n" + defaultEnvContent

	return os.WriteFile(envPath, []byte(existingStr), 0644)
}
