package seeder

type LoadOptions struct {
	// ContinueOnError keeps loading after a failed record. The first error
	// is still returned.
	ContinueOnError bool
}

// GenerateConfig sizes a generated batch.
type GenerateConfig struct {
	Users           int
	IdeasPerUser    int
	CommentsPerIdea int
	LikesPerIdea    int // capped at Users, a user likes an idea at most once
	Seed            int64
}
