package cmd

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/knights/cmd/output"
	"github.com/Lumos-Labs-HQ/knights/internal/config"
	"github.com/Lumos-Labs-HQ/knights/internal/seeder"
	"github.com/Lumos-Labs-HQ/knights/internal/types"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	seedFile            string
	seedContinueOnError bool
	seedGenerate        int
	seedIdeasPerUser    int
	seedCommentsPerIdea int
	seedLikesPerIdea    int
	seedRandom          int64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load seed data",
	Long: `Insert a batch of users, ideas, comments and likes in foreign-key order.

Without --file or --generate the built-in sample data is loaded. Seed files
are JSON or YAML with the keys users, ideas, comments and likes; ids in the
file are placeholders that later records may reference. Records inserted
before a failure stay in the database.`,
	Example: `  knights seed
  knights seed --file db/seed.yaml --continue-on-error
  knights seed --generate 20 --ideas-per-user 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, source, err := seedBatch()
		if err != nil {
			return err
		}

		ctx := context.Background()
		sess, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer sess.Close()

		color.Cyan("🌱 Loading %d record(s) from %s...", data.Size(), source)

		report, err := sess.Seeder.LoadSeed(ctx, data, seeder.LoadOptions{ContinueOnError: seedContinueOnError})
		if err != nil {
			color.Yellow("⚠️  %s", output.LoadSummary(report))
			return err
		}
		color.Green("✅ %s", output.LoadSummary(report))
		return nil
	},
}

func seedBatch() (types.SeedData, string, error) {
	if seedGenerate > 0 {
		gen := seeder.NewDataGenerator(seedRandom)
		data := gen.Generate(seeder.GenerateConfig{
			Users:           seedGenerate,
			IdeasPerUser:    seedIdeasPerUser,
			CommentsPerIdea: seedCommentsPerIdea,
			LikesPerIdea:    seedLikesPerIdea,
		})
		return data, "generator", nil
	}

	cfg, err := config.Load()
	if err != nil {
		return types.SeedData{}, "", fmt.Errorf("failed to load config: %w", err)
	}

	// --file is bound to seed_file, so the flag wins over the config file.
	file := cfg.SeedFile
	if file == "" {
		data, err := seeder.SampleData()
		return data, "built-in sample", err
	}

	data, err := seeder.ReadSeedFile(file)
	if err != nil {
		return data, file, fmt.Errorf("failed to read %s: %w", file, err)
	}
	return data, file, nil
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "Seed file (.json, .yaml, .yml)")
	seedCmd.Flags().BoolVar(&seedContinueOnError, "continue-on-error", false, "Keep inserting after a failed record")
	seedCmd.Flags().IntVar(&seedGenerate, "generate", 0, "Generate a batch with this many users instead of reading a file")
	seedCmd.Flags().IntVar(&seedIdeasPerUser, "ideas-per-user", 2, "Ideas per generated user")
	seedCmd.Flags().IntVar(&seedCommentsPerIdea, "comments-per-idea", 1, "Comments per generated idea")
	seedCmd.Flags().IntVar(&seedLikesPerIdea, "likes-per-idea", 1, "Likes per generated idea")
	seedCmd.Flags().Int64Var(&seedRandom, "random-seed", 0, "Random seed for --generate (0 uses the clock)")

	_ = viper.BindPFlag("seed_file", seedCmd.Flags().Lookup("file"))
}
