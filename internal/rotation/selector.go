package rotation

import (
	"context"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/silverbridge/seniorfit-cli/internal/model"
	"github.com/silverbridge/seniorfit-cli/internal/store"
)

// ErrNoRegions reports a non-empty video catalog in which no video carries
// an identifiable body region. That is a data-integrity problem, not a
// legitimate empty state.
var ErrNoRegions = eris.New("rotation: video catalog has no identifiable regions")

const fallbackRegion = "other"

// Selector picks one exercise video per user per day, alternating the
// target body region across days. Repeated calls on the same day return
// the stored choice unchanged.
type Selector struct {
	store store.RotationStore
	clock clockwork.Clock
	pick  func(n int) int

	mu    sync.Mutex
	users map[string]*sync.Mutex
}

type Option func(*Selector)

// WithClock overrides the wall clock, mainly for tests.
func WithClock(c clockwork.Clock) Option {
	return func(s *Selector) { s.clock = c }
}

// WithPick overrides the uniform random index choice, mainly for tests.
func WithPick(pick func(n int) int) Option {
	return func(s *Selector) { s.pick = pick }
}

func NewSelector(st store.RotationStore, opts ...Option) *Selector {
	s := &Selector{
		store: st,
		clock: clockwork.NewRealClock(),
		pick:  rand.Intn,
		users: make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ChooseForToday selects a video for the current calendar date.
func (s *Selector) ChooseForToday(ctx context.Context, userID string, videos []model.ExerciseVideo) (*model.RotationEntry, error) {
	return s.ChooseForDate(ctx, userID, s.clock.Now().Format("2006-01-02"), videos)
}

// ChooseForDate selects a video for user userID on the given date
// (YYYY-MM-DD). An empty catalog yields a nil entry and no error.
func (s *Selector) ChooseForDate(ctx context.Context, userID, date string, videos []model.ExerciseVideo) (*model.RotationEntry, error) {
	if len(videos) == 0 {
		zap.L().Debug("rotation: empty video catalog", zap.String("user_id", userID))
		return nil, nil
	}

	groups, regions := GroupByRegion(videos)
	if len(regions) == 0 {
		return nil, ErrNoRegions
	}

	// Per-user lock so concurrent same-day requests cannot both win the
	// "not yet chosen today" race.
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	prev, err := s.store.GetEntry(ctx, userID)
	if err != nil {
		return nil, eris.Wrap(err, "rotation: read history")
	}
	if prev != nil && prev.Date == date {
		return prev, nil
	}

	candidates := regions
	if prev != nil && len(regions) > 1 {
		candidates = make([]string, 0, len(regions)-1)
		for _, r := range regions {
			if r != prev.Region {
				candidates = append(candidates, r)
			}
		}
		if len(candidates) == 0 {
			candidates = regions
		}
	}

	region := candidates[s.pick(len(candidates))]
	pool := groups[region]
	video := pool[s.pick(len(pool))]

	entry := model.RotationEntry{
		ID:     uuid.New().String(),
		UserID: userID,
		Date:   date,
		Region: region,
		Video:  video,
	}
	if err := s.store.SetEntry(ctx, entry); err != nil {
		return nil, eris.Wrap(err, "rotation: persist choice")
	}

	zap.L().Info("rotation: chose video",
		zap.String("user_id", userID),
		zap.String("date", date),
		zap.String("region", region),
		zap.String("video", video.Name))
	return &entry, nil
}

func (s *Selector) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.users[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.users[userID] = lock
	}
	return lock
}

// GroupByRegion buckets videos by target body region. Multi-region labels
// are duplicated into each region's group; degenerate labels collapse into
// the "other" group. Nameless rows are skipped entirely. The returned
// region list is sorted for deterministic indexing.
func GroupByRegion(videos []model.ExerciseVideo) (map[string][]model.ExerciseVideo, []string) {
	groups := make(map[string][]model.ExerciseVideo)
	for _, v := range videos {
		if strings.TrimSpace(v.Name) == "" {
			continue
		}
		seen := make(map[string]bool)
		for _, raw := range v.BodyRegions {
			for _, part := range strings.Split(raw, "/") {
				region := strings.ToLower(strings.TrimSpace(part))
				if region == "" || region == "-" {
					continue
				}
				if !seen[region] {
					seen[region] = true
					groups[region] = append(groups[region], v)
				}
			}
		}
		if len(seen) == 0 {
			groups[fallbackRegion] = append(groups[fallbackRegion], v)
		}
	}

	regions := make([]string, 0, len(groups))
	for r := range groups {
		regions = append(regions, r)
	}
	sort.Strings(regions)
	return groups, regions
}
