package seeder

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Lumos-Labs-HQ/knights/internal/types"
	"github.com/google/uuid"
)

var (
	firstNames = []string{"John", "Jane", "Alice", "Bob", "Charlie", "Diana", "Eve", "Frank", "Grace", "Henry"}
	lastNames  = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez"}
	domains    = []string{"example.com", "test.com", "demo.com", "mail.com"}
	genders    = []string{"woman", "man", "non-binary", "prefer not to say"}
	outlooks   = []string{"straight", "gay", "bisexual", "prefer not to say"}
	ideaTexts  = []string{
		"Extend library hours during finals week.",
		"Add bike racks next to the engineering building.",
		"Run a weekly open mic in the student center.",
		"Offer a shared calendar for club events.",
		"Put water refill stations on every floor.",
	}
	commentTexts = []string{
		"This would help a lot.",
		"Not sure this is feasible, but I like it.",
		"Who would maintain it?",
		"Count me in.",
	}
)

// DataGenerator produces synthetic seed batches.
type DataGenerator struct {
	rand    *rand.Rand
	counter int
}

// NewDataGenerator seeds the generator; seed 0 uses the current time.
func NewDataGenerator(seed int64) *DataGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &DataGenerator{
		rand: rand.New(rand.NewSource(seed)),
	}
}

// Generate builds a batch with placeholder ids numbered from 1. Every
// reference points at a record of the same batch.
func (g *DataGenerator) Generate(cfg GenerateConfig) types.SeedData {
	var data types.SeedData

	for i := 0; i < cfg.Users; i++ {
		data.Users = append(data.Users, types.User{
			ID:                uuid.NewString(),
			Username:          g.generateName(),
			Email:             g.generateEmail(),
			GenderIdentity:    pick(g.rand, genders),
			SexualOrientation: pick(g.rand, outlooks),
		})
	}
	if len(data.Users) == 0 {
		return data
	}

	likesPerIdea := cfg.LikesPerIdea
	if likesPerIdea > len(data.Users) {
		likesPerIdea = len(data.Users)
	}

	var ideaID, commentID, likeID int64
	for _, author := range data.Users {
		for j := 0; j < cfg.IdeasPerUser; j++ {
			ideaID++
			data.Ideas = append(data.Ideas, types.Idea{
				ID:      ideaID,
				UserID:  author.ID,
				Content: pick(g.rand, ideaTexts),
			})

			for k := 0; k < cfg.CommentsPerIdea; k++ {
				commentID++
				data.Comments = append(data.Comments, types.Comment{
					ID:      commentID,
					IdeaID:  ideaID,
					UserID:  data.Users[g.rand.Intn(len(data.Users))].ID,
					Content: pick(g.rand, commentTexts),
				})
			}

			for _, u := range g.rand.Perm(len(data.Users))[:likesPerIdea] {
				likeID++
				data.Likes = append(data.Likes, types.Like{
					ID:     likeID,
					IdeaID: ideaID,
					UserID: data.Users[u].ID,
				})
			}
		}
	}

	return data
}

func (g *DataGenerator) generateName() string {
	return pick(g.rand, firstNames) + " " + pick(g.rand, lastNames)
}

func (g *DataGenerator) generateEmail() string {
	g.counter++
	return fmt.Sprintf("user%d_%d@%s", g.counter, g.rand.Intn(100000), pick(g.rand, domains))
}

func pick(r *rand.Rand, values []string) string {
	return values[r.Intn(len(values))]
}
