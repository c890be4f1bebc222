package service

import (
	"context"
	"sort"

	"github.com/smartlicense/license-api/internal/core/domain"
	"github.com/smartlicense/license-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories. Each mirrors the uniqueness rules the real
// gateways enforce so the services see the same errors.
// ---------------------------------------------------------------------------

// prefixHasher is a fast deterministic stand-in for bcrypt.
type prefixHasher struct{}

func (prefixHasher) Hash(secret string) (string, error) { return "hashed:" + secret, nil }
func (prefixHasher) Verify(secret, hash string) bool { return hash == "hashed:"+secret }

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	clone := *u
	clone.ID = r.nextID
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string, excludeID int64) (bool, error) {
	for id, u := range r.users {
		if id == excludeID {
			continue
		}
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, ok := r.users[u.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	r.users[u.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) SetActive(_ context.Context, id int64, active bool) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.IsActive = active
	clone := *u
	return &clone, nil
}

type stubBookingRepo struct {
	bookings map[int64]*domain.Booking
	nextID    int64
	creates   int
	createErr error
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{bookings: make(map[int64]*domain.Booking)}
}

func (r *stubBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.creates++
	r.nextID++
	clone := *b
	clone.ID = r.nextID
	r.bookings[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubBookingRepo) FindByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

// List applies the same predicates the real repositories translate to queries.
func (r *stubBookingRepo) List(_ context.Context, f ports.BookingFilter) ([]domain.Booking, error) {
	out := []domain.Booking{}
	for _, b := range r.bookings {
		if f.LearnerID != nil && b.LearnerID != *f.LearnerID {
			continue
		}
		if f.TestDate != "" && b.TestDate != f.TestDate {
			continue
		}
		if f.Result != "" && b.Result != f.Result {
			continue
		}
		if f.NotResult != "" && b.Result == f.NotResult {
			continue
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubBookingRepo) Update(_ context.Context, id int64, patch domain.BookingPatch) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	applyBookingPatch(b, patch)
	clone := *b
	return &clone, nil
}

func (r *stubBookingRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.bookings[id]; !ok {
		return domain.ErrBookingNotFound
	}
	delete(r.bookings, id)
	return nil
}

type stubQuestionRepo struct {
	questions []domain.SecurityQuestion
}

func (r *stubQuestionRepo) List(_ context.Context) ([]domain.SecurityQuestion, error) {
	return append([]domain.SecurityQuestion{}, r.questions...), nil
}

func (r *stubQuestionRepo) FindByID(_ context.Context, id int64) (*domain.SecurityQuestion, error) {
	for _, q := range r.questions {
		if q.ID == id {
			clone := q
			return &clone, nil
		}
	}
	return nil, domain.ErrQuestionNotFound
}

func (r *stubQuestionRepo) EnsureQuestions(_ context.Context, texts []string) (int, error) {
	inserted := 0
outer:
	for _, text := range texts {
		for _, q := range r.questions {
			if q.Question == text {
				continue outer
			}
		}
		r.questions = append(r.questions, domain.SecurityQuestion{ID: int64(len(r.questions) + 1), Question: text})
		inserted++
	}
	return inserted, nil
}

type stubAnswerRepo struct {
	answers []domain.SecurityAnswer
}

func (r *stubAnswerRepo) Create(_ context.Context, a *domain.SecurityAnswer) (*domain.SecurityAnswer, error) {
	for _, existing := range r.answers {
		if existing.UserID == a.UserID && existing.QuestionID == a.QuestionID {
			return nil, domain.ErrAnswerExists
		}
	}
	clone := *a
	clone.ID = int64(len(r.answers) + 1)
	r.answers = append(r.answers, clone)
	return &clone, nil
}

func (r *stubAnswerRepo) ListByUser(_ context.Context, userID int64) ([]domain.SecurityAnswer, error) {
	out := []domain.SecurityAnswer{}
	for _, a := range r.answers {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

type stubStationRepo struct {
	stations map[int64]*domain.Station
	nextID   int64
}

func newStubStationRepo() *stubStationRepo {
	return &stubStationRepo{stations: make(map[int64]*domain.Station)}
}

func (r *stubStationRepo) Create(_ context.Context, s *domain.Station) (*domain.Station, error) {
	r.nextID++
	clone := *s
	clone.ID = r.nextID
	r.stations[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubStationRepo) FindByID(_ context.Context, id int64) (*domain.Station, error) {
	s, ok := r.stations[id]
	if !ok {
		return nil, domain.ErrStationNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubStationRepo) List(_ context.Context) ([]domain.Station, error) {
	out := []domain.Station{}
	for _, s := range r.stations {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubStationRepo) Update(_ context.Context, id int64, patch domain.StationPatch) (*domain.Station, error) {
	s, ok := r.stations[id]
	if !ok {
		return nil, domain.ErrStationNotFound
	}
	applyStationPatch(s, patch)
	clone := *s
	return &clone, nil
}

func (r *stubStationRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.stations[id]; !ok {
		return domain.ErrStationNotFound
	}
	delete(r.stations, id)
	return nil
}

func (r *stubStationRepo) EnsureStations(ctx context.Context, stations []domain.Station) (int, error) {
	inserted := 0
outer:
	for _, s := range stations {
		for _, existing := range r.stations {
			if existing.Name == s.Name {
				continue outer
			}
		}
		if _, err := r.Create(ctx, &s); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

type stubUserProfileRepo struct {
	profiles map[int64]*domain.UserProfile
}

func newStubUserProfileRepo() *stubUserProfileRepo {
	return &stubUserProfileRepo{profiles: make(map[int64]*domain.UserProfile)}
}

func (r *stubUserProfileRepo) Create(_ context.Context, p *domain.UserProfile) (*domain.UserProfile, error) {
	if _, ok := r.profiles[p.UserID]; ok {
		return nil, domain.ErrUserProfileExists
	}
	for _, existing := range r.profiles {
		if existing.IDNumber == p.IDNumber {
			return nil, domain.ErrIDNumberTaken
		}
	}
	clone := *p
	r.profiles[p.UserID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserProfileRepo) FindByUserID(_ context.Context, userID int64) (*domain.UserProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrUserProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubUserProfileRepo) List(_ context.Context) ([]domain.UserProfile, error) {
	out := []domain.UserProfile{}
	for _, p := range r.profiles {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *stubUserProfileRepo) Update(_ context.Context, p *domain.UserProfile) (*domain.UserProfile, error) {
	if _, ok := r.profiles[p.UserID]; !ok {
		return nil, domain.ErrUserProfileNotFound
	}
	for id, existing := range r.profiles {
		if id != p.UserID && existing.IDNumber == p.IDNumber {
			return nil, domain.ErrIDNumberTaken
		}
	}
	clone := *p
	r.profiles[p.UserID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserProfileRepo) Delete(_ context.Context, userID int64) error {
	if _, ok := r.profiles[userID]; !ok {
		return domain.ErrUserProfileNotFound
	}
	delete(r.profiles, userID)
	return nil
}

type stubInstructorRepo struct {
	profiles map[int64]*domain.InstructorProfile
}

func newStubInstructorRepo() *stubInstructorRepo {
	return &stubInstructorRepo{profiles: make(map[int64]*domain.InstructorProfile)}
}

func (r *stubInstructorRepo) Create(_ context.Context, p *domain.InstructorProfile) (*domain.InstructorProfile, error) {
	if _, ok := r.profiles[p.UserID]; ok {
		return nil, domain.ErrInstructorProfileExists
	}
	for _, existing := range r.profiles {
		if existing.InfNr == p.InfNr {
			return nil, domain.ErrInstructorNumberTaken
		}
	}
	clone := *p
	r.profiles[p.UserID] = &clone
	out := clone
	return &out, nil
}

func (r *stubInstructorRepo) FindByUserID(_ context.Context, userID int64) (*domain.InstructorProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrInstructorProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubInstructorRepo) ExistsByInfNr(_ context.Context, infNr string) (bool, error) {
	for _, p := range r.profiles {
		if p.InfNr == infNr {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubInstructorRepo) List(_ context.Context) ([]domain.InstructorProfile, error) {
	out := []domain.InstructorProfile{}
	for _, p := range r.profiles {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *stubInstructorRepo) UpdateInfNr(_ context.Context, userID int64, infNr string) (*domain.InstructorProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrInstructorProfileNotFound
	}
	p.InfNr = infNr
	clone := *p
	return &clone, nil
}

func (r *stubInstructorRepo) Delete(_ context.Context, userID int64) error {
	if _, ok := r.profiles[userID]; !ok {
		return domain.ErrInstructorProfileNotFound
	}
	delete(r.profiles, userID)
	return nil
}

type stubLearnerRepo struct {
	profiles map[int64]*domain.LearnerProfile
}

func newStubLearnerRepo() *stubLearnerRepo {
	return &stubLearnerRepo{profiles: make(map[int64]*domain.LearnerProfile)}
}

func (r *stubLearnerRepo) Create(_ context.Context, p *domain.LearnerProfile) (*domain.LearnerProfile, error) {
	if _, ok := r.profiles[p.UserID]; ok {
		return nil, domain.ErrLearnerProfileExists
	}
	clone := *p
	r.profiles[p.UserID] = &clone
	out := clone
	return &out, nil
}

func (r *stubLearnerRepo) FindByUserID(_ context.Context, userID int64) (*domain.LearnerProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrLearnerProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubLearnerRepo) List(_ context.Context) ([]domain.LearnerProfile, error) {
	out := []domain.LearnerProfile{}
	for _, p := range r.profiles {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *stubLearnerRepo) Update(_ context.Context, p *domain.LearnerProfile) (*domain.LearnerProfile, error) {
	if _, ok := r.profiles[p.UserID]; !ok {
		return nil, domain.ErrLearnerProfileNotFound
	}
	clone := *p
	r.profiles[p.UserID] = &clone
	out := clone
	return &out, nil
}

func (r *stubLearnerRepo) Delete(_ context.Context, userID int64) error {
	if _, ok := r.profiles[userID]; !ok {
		return domain.ErrLearnerProfileNotFound
	}
	delete(r.profiles, userID)
	return nil
}

// stubIdempotency holds claimed keys; 0 marks a claim without a booking yet.
type stubIdempotency struct {
	keys     map[string]int64
	claimErr error
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{keys: make(map[string]int64)}
}

func (s *stubIdempotency) Claim(_ context.Context, key string) (int64, bool, error) {
	if s.claimErr != nil {
		return 0, false, s.claimErr
	}
	if id, ok := s.keys[key]; ok {
		return id, false, nil
	}
	s.keys[key] = 0
	return 0, true, nil
}

func (s *stubIdempotency) Remember(_ context.Context, key string, id int64) error {
	s.keys[key] = id
	return nil
}

func (s *stubIdempotency) Release(_ context.Context, key string) error {
	delete(s.keys, key)
	return nil
}

// applyBookingPatch merges patch into b the way the stores' update statements do.
func applyBookingPatch(b *domain.Booking, p domain.BookingPatch) {
	if p.LearnerID != nil {
		b.LearnerID = *p.LearnerID
	}
	if p.InstructorID != nil {
		b.InstructorID = *p.InstructorID
	}
	if p.StationID != nil {
		b.StationID = *p.StationID
	}
	if p.TestDate != nil {
		b.TestDate = *p.TestDate
	}
	if p.Result != nil {
		b.Result = *p.Result
	}
	if p.BookingDate != nil {
		b.BookingDate = *p.BookingDate
	}
	if p.LicenseCode != nil {
		code := *p.LicenseCode
		b.LicenseCode = &code
	}
	if p.RegisteredOn != nil {
		b.RegisteredOn = *p.RegisteredOn
	}
}

func applyStationPatch(s *domain.Station, p domain.StationPatch) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.NumGrounds != nil {
		s.NumGrounds = *p.NumGrounds
	}
}
