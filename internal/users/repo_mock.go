package users

import (
	"context"
	"sync"
	"time"

	"github.com/2beens/fitcoach/internal/checkins/recap"
)

var _ usersRepo = (*repoMock)(nil)

type repoMock struct {
	// user ID to User
	Users  map[int]User
	nextID int
	mutex  sync.Mutex
}

func NewRepoMock() *repoMock {
	repo := &repoMock{
		Users:  map[int]User{},
		nextID: 2,
	}

	repo.Users[1] = User{
		ID:           1,
		Username:     "mia",
		PasswordHash: "not-a-real-hash",
		DisplayName:  "Mia",
		Goal:         recap.GoalLoseWeight,
		Age:          30,
		Sex:          "female",
		HeightCm:     165,
		WeightKg:     65,
		Timezone:     "Europe/Berlin",
		TrainingDays: 3,
		GymAccess:    "full_gym",
		Equipment:    []string{"full gym"},
		Experience:   "intermediate",
		Macros: MacroTargets{
			Calories: 1900,
			Protein:  140,
			Carbs:    180,
			Fat:      55,
		},
		CreatedAt: time.Now(),
	}

	return repo
}

func (r *repoMock) Add(_ context.Context, user User) (*User, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	user.ID = r.nextID
	r.nextID++
	r.Users[user.ID] = user

	added := user
	return &added, nil
}

func (r *repoMock) Get(_ context.Context, id int) (*User, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	user, ok := r.Users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (r *repoMock) GetByUsername(_ context.Context, username string) (*User, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, user := range r.Users {
		if user.Username == username {
			found := user
			return &found, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *repoMock) Update(_ context.Context, user *User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.Users[user.ID]; !ok {
		return ErrUserNotFound
	}
	r.Users[user.ID] = *user
	return nil
}
