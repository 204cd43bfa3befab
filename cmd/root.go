package cmd

import (
	"fmt"
	"os"

	"github.com/Lumos-Labs-HQ/knights/internal/config"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	Version = "1.0.0"

	log = logrus.New()
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔══════════════════════════════════════════════════════════════╗",
		"║    ██╗  ██╗███╗   ██╗██╗ ██████╗ ██╗  ██╗████████╗███████╗   ║",
		"║    ██║ ██╔╝████╗  ██║██║██╔════╝ ██║  ██║╚══██╔══╝██╔════╝   ║",
		"║    █████╔╝ ██╔██╗ ██║██║██║  ███╗███████║   ██║   ███████╗   ║",
		"║    ██╔═██╗ ██║╚██╗██║██║██║   ██║██╔══██║   ██║   ╚════██║   ║",
		"║    ██║  ██╗██║ ╚████║██║╚██████╔╝██║  ██║   ██║   ███████║   ║",
		"║    ╚═╝  ╚═╝╚═╝  ╚═══╝╚═╝ ╚═════╝ ╚═╝  ╚═╝   ╚═╝   ╚══════╝   ║",
		"║                                                              ║",
		"║              Admin console for users and ideas               ║",
		"╚══════════════════════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("                        ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "knights",
	Short: "Admin console for the knights idea board database",
	Long: `
knights manages the users, ideas, comments and likes tables of the idea board.

It creates and drops tables in foreign-key order, loads seed data,
lists rows and toggles the validity flag of users and ideas.

Database Support:
- PostgreSQL
- MySQL
- SQLite`,

	SilenceUsage:  true,
	SilenceErrors: true,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("knights version %s\n", Version)
			os.Exit(0)
		}

		if len(args) == 0 {
			showBanner()
			fmt.Println()
			cmd.Help()
		}
	},
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		color.Red("❌ %s", describe(err))
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+config.FileName+")")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log every storage operation")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("knights.config")
	}

	viper.AutomaticEnv()
	config.BindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		log.WithField("file", viper.ConfigFileUsed()).Debug("using config file")
	}
}
