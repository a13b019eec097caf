package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"online-poll-backend/internal/models"
)

// memStore is a mutex-guarded in-memory store used by the service tests.
// Like the real store, it enforces the (user, poll) unique constraint
// atomically with the vote insert and the counter increment, so concurrent
// casts exercise the same guarantees the database provides.
type memStore struct {
	mu      sync.Mutex
	users   map[string]*models.User
	polls   map[string]*models.Poll
	options map[string]*models.Option
	votes   map[string]*models.Vote
	voted   map[string]string // userID + "|" + pollID -> vote ID

	castErrs    []error          // scripted errors returned by Cast before real work
	setCountErr map[string]error // scripted per-option SetOptionCount failures
}

func newMemStore() *memStore {
	return &memStore{
		users:       make(map[string]*models.User),
		polls:       make(map[string]*models.Poll),
		options:     make(map[string]*models.Option),
		votes:       make(map[string]*models.Vote),
		voted:       make(map[string]string),
		setCountErr: make(map[string]error),
	}
}

func voteKey(userID, pollID string) string { return userID + "|" + pollID }

// memUsers and memPolls adapt memStore to the UserStore and PollStore
// interfaces, whose Create methods have clashing signatures.
type memUsers struct{ *memStore }

func (u memUsers) Create(ctx context.Context, user *models.User) error {
	return u.createUser(ctx, user)
}

func (u memUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	user, ok := u.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

type memPolls struct{ *memStore }

func (p memPolls) Create(ctx context.Context, poll *models.Poll, options []*models.Option) error {
	return p.createPoll(ctx, poll, options)
}

// UserStore

func (s *memStore) createUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username {
			return models.ErrUsernameTaken
		}
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *memStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrUserNotFound
}

// PollStore

func (s *memStore) createPoll(ctx context.Context, poll *models.Poll, options []*models.Option) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *poll
	s.polls[poll.ID] = &cp
	for _, opt := range options {
		oc := *opt
		s.options[opt.ID] = &oc
	}
	return nil
}

func (s *memStore) GetByID(ctx context.Context, id string) (*models.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	poll, ok := s.polls[id]
	if !ok {
		return nil, models.ErrPollNotFound
	}
	cp := *poll
	return &cp, nil
}

func (s *memStore) GetOptions(ctx context.Context, pollID string) ([]*models.Option, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var options []*models.Option
	for _, opt := range s.options {
		if opt.PollID == pollID {
			cp := *opt
			options = append(options, &cp)
		}
	}
	sort.Slice(options, func(i, j int) bool { return options[i].ID < options[j].ID })
	return options, nil
}

func (s *memStore) List(ctx context.Context, f models.PollFilter) ([]*models.PollSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.PollSummary
	for _, poll := range s.polls {
		if f.Active != nil {
			active := poll.ExpiresAt == nil || f.Now.Before(*poll.ExpiresAt)
			if active != *f.Active {
				continue
			}
		}
		sum := &models.PollSummary{Poll: *poll}
		for _, opt := range s.options {
			if opt.PollID == poll.ID {
				sum.TotalVotes += opt.VoteCount
			}
		}
		out = append(out, sum)
	}
	sort.Slice(out, func(i, j int) bool {
		if f.Sort == models.SortTop && out[i].TotalVotes != out[j].TotalVotes {
			return out[i].TotalVotes > out[j].TotalVotes
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if f.Offset < len(out) {
		out = out[f.Offset:]
	} else {
		out = nil
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (s *memStore) CountCreatedBetween(ctx context.Context, creatorID string, from, to time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, poll := range s.polls {
		if poll.CreatedBy != creatorID {
			continue
		}
		if !poll.CreatedAt.Before(from) && poll.CreatedAt.Before(to) {
			count++
		}
	}
	return count, nil
}

// VoteStore

func (s *memStore) GetOption(ctx context.Context, id string) (*models.Option, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	opt, ok := s.options[id]
	if !ok {
		return nil, models.ErrOptionNotFound
	}
	cp := *opt
	return &cp, nil
}

func (s *memStore) Cast(ctx context.Context, vote *models.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.castErrs) > 0 {
		err := s.castErrs[0]
		s.castErrs = s.castErrs[1:]
		if err != nil {
			return err
		}
	}
	key := voteKey(vote.UserID, vote.PollID)
	if _, exists := s.voted[key]; exists {
		return models.ErrDuplicateVote
	}
	opt, ok := s.options[vote.OptionID]
	if !ok || opt.PollID != vote.PollID {
		return models.ErrOptionNotFound
	}
	cp := *vote
	s.votes[vote.ID] = &cp
	s.voted[key] = vote.ID
	opt.VoteCount++
	return nil
}

func (s *memStore) OptionCounts(ctx context.Context, pollID string) ([]models.OptionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	actual := make(map[string]int64)
	for _, v := range s.votes {
		actual[v.OptionID]++
	}
	var results []models.OptionResult
	for _, opt := range s.options {
		if opt.PollID == pollID {
			results = append(results, models.OptionResult{
				ID:        opt.ID,
				Text:      opt.Text,
				VoteCount: actual[opt.ID],
			})
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

func (s *memStore) CountByPoll(ctx context.Context, pollID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, v := range s.votes {
		if v.PollID == pollID {
			count++
		}
	}
	return count, nil
}

func (s *memStore) CounterDrift(ctx context.Context) ([]models.CounterDrift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	actual := make(map[string]int64)
	for _, v := range s.votes {
		actual[v.OptionID]++
	}
	var drift []models.CounterDrift
	for _, opt := range s.options {
		if opt.VoteCount != actual[opt.ID] {
			drift = append(drift, models.CounterDrift{
				OptionID: opt.ID,
				Stored:   opt.VoteCount,
				Actual:   actual[opt.ID],
			})
		}
	}
	sort.Slice(drift, func(i, j int) bool { return drift[i].OptionID < drift[j].OptionID })
	return drift, nil
}

func (s *memStore) SetOptionCount(ctx context.Context, optionID string, count int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.setCountErr[optionID]; err != nil {
		return err
	}
	opt, ok := s.options[optionID]
	if !ok {
		return models.ErrOptionNotFound
	}
	opt.VoteCount = count
	return nil
}

// test helpers

func (s *memStore) storedCount(optionID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.options[optionID].VoteCount
}

func (s *memStore) voteRows(pollID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.votes {
		if v.PollID == pollID {
			n++
		}
	}
	return n
}

func (s *memStore) driftOption(optionID string, stored int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options[optionID].VoteCount = stored
}
