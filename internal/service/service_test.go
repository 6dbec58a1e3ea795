package service

import (
	"aifitness/planner/internal/domain"
	"aifitness/planner/internal/repository/memory"
	"context"
	"errors"
	"io"
	"time"
)

// fakeGenerator returns canned text and records what it was asked.
type fakeGenerator struct {
	text      string
	err       error
	prompts   []string
	maxTokens []int
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string, maxTokens int) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.maxTokens = append(f.maxTokens, maxTokens)
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakeStorage struct {
	objects    map[string]string
	putErr     error
	presignErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string]string{}}
}

func (f *fakeStorage) PutObject(_ context.Context, key, _ string, body io.Reader) error {
	if f.putErr != nil {
		return f.putErr
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.objects[key] = string(b)
	return nil
}

func (f *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	if _, ok := f.objects[key]; !ok {
		return "", errors.New("no such key")
	}
	return "https://storage.test/" + key + "?signed", nil
}

func sampleInput() domain.PlanInput {
	return domain.PlanInput{
		WorkoutType:   domain.WorkoutCardio,
		DietType:      domain.DietKeto,
		CurrentWeight: 80,
		TargetWeight:  72,
		Age:           29,
		Gender:        domain.GenderMale,
		NumberOfWeeks: 4,
	}
}

type testRepos struct {
	users *memory.UserRepository
	plans *memory.PlanRepository
	chats *memory.ChatRepository
}

func newTestRepos() testRepos {
	return testRepos{
		users: memory.NewUserRepository(),
		plans: memory.NewPlanRepository(),
		chats: memory.NewChatRepository(),
	}
}

func (f *fakeStorage) DeleteObject(_ context.Context, key string) error {
	delete(f.objects, key)
	return nil
}
