// Command seed fills the database with sample users and plans for local
// development.
package main

import (
	"aifitness/planner/internal/config"
	"aifitness/planner/internal/domain"
	"aifitness/planner/internal/logger"
	"aifitness/planner/internal/planner"
	"aifitness/planner/internal/repository"
	"aifitness/planner/internal/repository/mongo"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

var CLI struct {
	Config       string `help:"Directory containing config.yaml." type:"path" default:"."`
	PlansPerUser int    `help:"Plans to create for each sample user." default:"5"`
	Seed         uint64 `help:"Random seed for plan choices (0 means time based)." default:"0"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("seed"),
		kong.Description("Insert sample users and plans into MongoDB."),
		kong.UsageOnError(),
	)

	cfg, err := config.LoadConfig(CLI.Config)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not load config")
	}
	logger.Setup(cfg.Log)

	client, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not connect to MongoDB")
	}
	defer func() {
		if err := mongo.DisconnectDB(client); err != nil {
			log.Error().Err(err).Msg("Failed to disconnect MongoDB")
		}
	}()
	db := client.Database(cfg.Database.Name)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for name, build := range mongo.IndexBuilders(db) {
		if err := build(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("Failed to create indexes")
		}
	}

	seed := CLI.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	s := &seeder{
		users: mongo.NewMongoUserRepository(db),
		plans: mongo.NewMongoPlanRepository(db),
		rng:   rand.New(rand.NewPCG(seed, seed>>1)),
	}

	for _, su := range sampleUsers {
		user, err := s.ensureUser(ctx, su)
		if err != nil {
			log.Fatal().Err(err).Str("email", su.Email).Msg("Failed to seed user")
		}
		for i := 0; i < CLI.PlansPerUser; i++ {
			if err := s.createPlan(ctx, user, su.Gender, i); err != nil {
				log.Fatal().Err(err).Str("email", su.Email).Msg("Failed to seed plan")
			}
		}
		log.Info().Str("user", su.Name).Int("plans", CLI.PlansPerUser).Msg("Seeded user")
	}
	log.Info().Uint64("seed", seed).Msg("All sample data created")
}

type seeder struct {
	users repository.UserRepository
	plans repository.PlanRepository
	rng   *rand.Rand
}

// ensureUser creates the account, or returns the existing one so reruns
// only add plans.
func (s *seeder) ensureUser(ctx context.Context, su sampleUser) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Name:         su.Name,
		Email:        su.Email,
		PasswordHash: string(hash),
		Age:          su.Age,
		HeightCm:     su.HeightCm,
		WeightKg:     su.WeightKg,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return s.users.GetByEmail(ctx, su.Email)
		}
		return nil, err
	}
	return user, nil
}

func (s *seeder) createPlan(ctx context.Context, user *domain.User, gender domain.Gender, n int) error {
	input := domain.PlanInput{
		WorkoutType:         pick(s.rng, seedWorkoutTypes),
		DietType:            pick(s.rng, seedDietTypes),
		CurrentWeight:       user.WeightKg,
		TargetWeight:        user.WeightKg - float64(s.rng.IntN(5)+1),
		DietaryRestrictions: pick(s.rng, seedRestrictions),
		Age:                 user.Age,
		Gender:              gender,
		NumberOfWeeks:       s.rng.IntN(9) + 4,
		AdditionalComments:  "This is a customized plan to help achieve goals!",
	}

	// Stored the same way as a model answer: rendered with both markers and parsed back.
	raw := planner.FormatPlan(domain.GeneratedPlan{
		DietPlan:    dietTable(input.NumberOfWeeks),
		WorkoutPlan: workoutTable(s.rng, input.WorkoutType, input.NumberOfWeeks),
	})
	record := &domain.PlanRecord{
		UserID: user.ID,
		Title:  domain.PlanTitle(input),
		Input:  input,
		Plan:   planner.ParsePlanResponse(raw),
		// Spread plans over the past weeks so history has an order.
		CreatedAt: time.Now().UTC().Add(-time.Duration(n) * 7 * 24 * time.Hour),
	}
	_, err := s.plans.Create(ctx, record)
	return err
}

func dietTable(weeks int) string {
	var b strings.Builder
	for w := 1; w <= weeks; w++ {
		fmt.Fprintf(&b, "### Week %d\n\n", w)
		b.WriteString("| Day | Meal | Food Items | Portion Size | Calories |\n")
		b.WriteString("|-----|------|------------|--------------|----------|\n")
		for d, day := range daysOfWeek {
			m := mealRotation[(d+w)%len(mealRotation)]
			fmt.Fprintf(&b, "| %s | Breakfast | %s | 1 bowl | 350 |\n", day, m.Breakfast)
			fmt.Fprintf(&b, "| %s | Lunch | %s | 1 plate | 550 |\n", day, m.Lunch)
			fmt.Fprintf(&b, "| %s | Dinner | %s | 1 plate | 500 |\n", day, m.Dinner)
			fmt.Fprintf(&b, "| %s | Snacks | %s | 1 serving | 200 |\n", day, m.Snacks)
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func workoutTable(rng *rand.Rand, wt domain.WorkoutType, weeks int) string {
	var b strings.Builder
	for w := 1; w <= weeks; w++ {
		sessions, ok := workoutRotation[wt]
		if !ok {
			// Mixed plans borrow a different style each week.
			sessions = workoutRotation[pick(rng, seedWorkoutTypes[:4])]
		}
		fmt.Fprintf(&b, "### Week %d\n\n", w)
		b.WriteString("| Day | Exercise | Sets | Reps/Duration | Rest | Notes |\n")
		b.WriteString("|-----|----------|------|---------------|------|-------|\n")
		for d, day := range daysOfWeek {
			s := sessions[d]
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n", day, s.Exercise, s.Sets, s.Reps, s.Rest, s.Notes)
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func pick[T any](rng *rand.Rand, values []T) T {
	return values[rng.IntN(len(values))]
}
