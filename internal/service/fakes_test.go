package service

import (
	"context"
	"strconv"
	"time"

	"tamrino/trainer-app/internal/domain"
	"tamrino/trainer-app/internal/repository"
)

// In-memory repository fakes. They mirror the constraint behavior of
// the Postgres implementations (unique violations map to ErrDuplicate,
// missing rows to ErrNotFound) so the services under test see the same
// error surface.

// --- fakeTrainerRepo ---

type fakeTrainerRepo struct {
	nextID   int64
	trainers map[int64]*domain.Trainer
	profiles map[int64]*domain.TrainerProfile // keyed by trainer ID
}

func newFakeTrainerRepo() *fakeTrainerRepo {
	return &fakeTrainerRepo{
		trainers: make(map[int64]*domain.Trainer),
		profiles: make(map[int64]*domain.TrainerProfile),
	}
}

func (r *fakeTrainerRepo) Create(_ context.Context, trainer *domain.Trainer) (int64, error) {
	for _, t := range r.trainers {
		if t.Phone == trainer.Phone {
			return 0, repository.ErrDuplicate
		}
	}
	r.nextID++
	trainer.ID = r.nextID
	trainer.CreatedAt = time.Now()
	cp := *trainer
	r.trainers[trainer.ID] = &cp
	return trainer.ID, nil
}

func (r *fakeTrainerRepo) GetByID(_ context.Context, id int64) (*domain.Trainer, error) {
	t, ok := r.trainers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTrainerRepo) GetByPhone(_ context.Context, phone string) (*domain.Trainer, error) {
	for _, t := range r.trainers {
		if t.Phone == phone {
			cp := *t
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeTrainerRepo) CreateProfile(_ context.Context, profile *domain.TrainerProfile) (int64, error) {
	if _, ok := r.profiles[profile.TrainerID]; ok {
		return 0, repository.ErrDuplicate
	}
	r.nextID++
	profile.ID = r.nextID
	cp := *profile
	r.profiles[profile.TrainerID] = &cp
	return profile.ID, nil
}

func (r *fakeTrainerRepo) GetProfile(_ context.Context, trainerID int64) (*domain.TrainerProfile, error) {
	p, ok := r.profiles[trainerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeTrainerRepo) UpdateProfile(_ context.Context, trainerID int64, update domain.TrainerProfileUpdate) (*domain.TrainerProfile, error) {
	p, ok := r.profiles[trainerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if update.GymName != nil {
		p.GymName = *update.GymName
	}
	if update.Bio != nil {
		p.Bio = *update.Bio
	}
	if update.Address != nil {
		p.Address = *update.Address
	}
	if update.Instagram != nil {
		p.Instagram = *update.Instagram
	}
	if update.Telegram != nil {
		p.Telegram = *update.Telegram
	}
	if update.Website != nil {
		p.Website = *update.Website
	}
	p.UpdatedAt = time.Now()
	cp := *p
	return &cp, nil
}

// --- fakeStudentRepo ---

type fakeStudentRepo struct {
	nextID   int64
	students map[int64]*domain.Student
	// cascaded records student IDs whose delete cascade ran.
	cascaded []int64
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[int64]*domain.Student)}
}

func (r *fakeStudentRepo) Create(_ context.Context, student *domain.Student) (int64, error) {
	for _, s := range r.students {
		if s.Phone == student.Phone && s.TrainerID == student.TrainerID {
			return 0, repository.ErrDuplicate
		}
	}
	r.nextID++
	student.ID = r.nextID
	student.CreatedAt = time.Now()
	cp := *student
	r.students[student.ID] = &cp
	return student.ID, nil
}

func (r *fakeStudentRepo) GetByID(_ context.Context, id int64) (*domain.Student, error) {
	s, ok := r.students[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStudentRepo) GetByPhone(_ context.Context, phone string) (*domain.Student, error) {
	var found *domain.Student
	for _, s := range r.students {
		if s.Phone == phone && (found == nil || s.ID < found.ID) {
			found = s
		}
	}
	if found == nil {
		return nil, repository.ErrNotFound
	}
	cp := *found
	return &cp, nil
}

func (r *fakeStudentRepo) GetByPhoneAndTrainer(_ context.Context, phone string, trainerID int64) (*domain.Student, error) {
	for _, s := range r.students {
		if s.Phone == phone && s.TrainerID == trainerID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeStudentRepo) GetByTrainerID(_ context.Context, trainerID int64) ([]domain.Student, error) {
	var out []domain.Student
	for _, s := range r.students {
		if s.TrainerID == trainerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeStudentRepo) Update(_ context.Context, id int64, update domain.StudentUpdate) (*domain.Student, error) {
	s, ok := r.students[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if update.Phone != nil {
		for _, other := range r.students {
			if other.ID != id && other.Phone == *update.Phone && other.TrainerID == s.TrainerID {
				return nil, repository.ErrDuplicate
			}
		}
		s.Phone = *update.Phone
	}
	if update.Name != nil {
		s.Name = *update.Name
	}
	if update.Gender != nil {
		s.Gender = *update.Gender
	}
	if update.Age != nil {
		s.Age = *update.Age
	}
	if update.Height != nil {
		s.Height = *update.Height
	}
	if update.Weight != nil {
		s.Weight = *update.Weight
	}
	if update.GoalType != nil {
		s.GoalType = *update.GoalType
	}
	if update.ActivityLevel != nil {
		s.ActivityLevel = *update.ActivityLevel
	}
	if update.MedicalConditions != nil {
		s.MedicalConditions = *update.MedicalConditions
	}
	if update.IsActive != nil {
		s.IsActive = *update.IsActive
	}
	s.UpdatedAt = time.Now()
	cp := *s
	return &cp, nil
}

func (r *fakeStudentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.students[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.students, id)
	r.cascaded = append(r.cascaded, id)
	return nil
}

// --- fakeHistoryRepo ---

type fakeHistoryRepo struct {
	nextID  int64
	entries []domain.StudentHistory
	failAll bool
}

func newFakeHistoryRepo() *fakeHistoryRepo { return &fakeHistoryRepo{} }

func (r *fakeHistoryRepo) Create(_ context.Context, entry *domain.StudentHistory) (int64, error) {
	if r.failAll {
		return 0, repository.ErrUpdateFailed
	}
	r.nextID++
	entry.ID = r.nextID
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, *entry)
	return entry.ID, nil
}

func (r *fakeHistoryRepo) GetByStudentID(_ context.Context, studentID int64) ([]domain.StudentHistory, error) {
	var out []domain.StudentHistory
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].StudentID == studentID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

func (r *fakeHistoryRepo) DeleteByTrainerID(_ context.Context, trainerID int64) (int64, error) {
	var kept []domain.StudentHistory
	var deleted int64
	for _, e := range r.entries {
		if e.TrainerID == trainerID {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept
	return deleted, nil
}

// --- fakeSessionRepo ---

type fakeSessionRepo struct {
	sessions map[string]*domain.AuthSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*domain.AuthSession)}
}

func (r *fakeSessionRepo) Create(_ context.Context, s *domain.AuthSession) error {
	if _, ok := r.sessions[s.Token]; ok {
		return repository.ErrDuplicate
	}
	s.CreatedAt = time.Now()
	cp := *s
	r.sessions[s.Token] = &cp
	return nil
}

func (r *fakeSessionRepo) GetByToken(_ context.Context, token string) (*domain.AuthSession, error) {
	s, ok := r.sessions[token]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSessionRepo) Save(_ context.Context, s *domain.AuthSession) error {
	if _, ok := r.sessions[s.Token]; !ok {
		return repository.ErrNotFound
	}
	cp := *s
	r.sessions[s.Token] = &cp
	return nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, token string) error {
	if _, ok := r.sessions[token]; !ok {
		return repository.ErrNotFound
	}
	delete(r.sessions, token)
	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	var deleted int64
	now := time.Now()
	for token, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, token)
			deleted++
		}
	}
	return deleted, nil
}

// --- fakeAssignmentRepo ---

type fakeAssignmentRepo struct {
	nextID      int64
	programs    map[int64]*domain.ExerciseProgram
	mealPlans   map[int64]*domain.MealPlan
	supplements map[int64]*domain.StudentSupplement
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{
		programs:    make(map[int64]*domain.ExerciseProgram),
		mealPlans:   make(map[int64]*domain.MealPlan),
		supplements: make(map[int64]*domain.StudentSupplement),
	}
}

func (r *fakeAssignmentRepo) CreateProgram(_ context.Context, p *domain.ExerciseProgram) (int64, error) {
	r.nextID++
	p.ID = r.nextID
	p.CreatedAt = time.Now()
	cp := *p
	r.programs[p.ID] = &cp
	return p.ID, nil
}

func (r *fakeAssignmentRepo) GetProgramsByStudent(_ context.Context, studentID int64) ([]domain.ExerciseProgram, error) {
	var out []domain.ExerciseProgram
	for _, p := range r.programs {
		if p.StudentID == studentID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) GetProgramsByStudentAndDay(_ context.Context, studentID int64, day int) ([]domain.ExerciseProgram, error) {
	var out []domain.ExerciseProgram
	for _, p := range r.programs {
		if p.StudentID == studentID && p.DayOfWeek == day {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) SetProgramCompleted(_ context.Context, studentID, id int64, completed bool) error {
	p, ok := r.programs[id]
	if !ok || p.StudentID != studentID {
		return repository.ErrNotFound
	}
	p.IsCompleted = completed
	return nil
}

func (r *fakeAssignmentRepo) DeleteProgram(_ context.Context, studentID, id int64) error {
	p, ok := r.programs[id]
	if !ok || p.StudentID != studentID {
		return repository.ErrNotFound
	}
	delete(r.programs, id)
	return nil
}

func (r *fakeAssignmentRepo) ReplacePrograms(_ context.Context, studentID int64, day int, items []domain.ExerciseProgram) ([]domain.ExerciseProgram, error) {
	for id, p := range r.programs {
		if p.StudentID == studentID && p.DayOfWeek == day {
			delete(r.programs, id)
		}
	}
	out := make([]domain.ExerciseProgram, 0, len(items))
	for _, item := range items {
		r.nextID++
		item.ID = r.nextID
		item.CreatedAt = time.Now()
		cp := item
		r.programs[item.ID] = &cp
		out = append(out, item)
	}
	return out, nil
}

func (r *fakeAssignmentRepo) CreateMealPlan(_ context.Context, p *domain.MealPlan) (int64, error) {
	r.nextID++
	p.ID = r.nextID
	p.CreatedAt = time.Now()
	cp := *p
	r.mealPlans[p.ID] = &cp
	return p.ID, nil
}

func (r *fakeAssignmentRepo) GetMealPlansByStudent(_ context.Context, studentID int64) ([]domain.MealPlan, error) {
	var out []domain.MealPlan
	for _, p := range r.mealPlans {
		if p.StudentID == studentID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) GetMealPlansByStudentAndDay(_ context.Context, studentID int64, day int) ([]domain.MealPlan, error) {
	var out []domain.MealPlan
	for _, p := range r.mealPlans {
		if p.StudentID == studentID && p.DayOfWeek == day {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) SetMealPlanCompleted(_ context.Context, studentID, id int64, completed bool) error {
	p, ok := r.mealPlans[id]
	if !ok || p.StudentID != studentID {
		return repository.ErrNotFound
	}
	p.IsCompleted = completed
	return nil
}

func (r *fakeAssignmentRepo) DeleteMealPlan(_ context.Context, studentID, id int64) error {
	p, ok := r.mealPlans[id]
	if !ok || p.StudentID != studentID {
		return repository.ErrNotFound
	}
	delete(r.mealPlans, id)
	return nil
}

func (r *fakeAssignmentRepo) ReplaceMealPlans(_ context.Context, studentID int64, day int, items []domain.MealPlan) ([]domain.MealPlan, error) {
	for id, p := range r.mealPlans {
		if p.StudentID == studentID && p.DayOfWeek == day {
			delete(r.mealPlans, id)
		}
	}
	out := make([]domain.MealPlan, 0, len(items))
	for _, item := range items {
		r.nextID++
		item.ID = r.nextID
		item.CreatedAt = time.Now()
		cp := item
		r.mealPlans[item.ID] = &cp
		out = append(out, item)
	}
	return out, nil
}

func (r *fakeAssignmentRepo) CreateSupplement(_ context.Context, s *domain.StudentSupplement) (int64, error) {
	r.nextID++
	s.ID = r.nextID
	s.CreatedAt = time.Now()
	cp := *s
	r.supplements[s.ID] = &cp
	return s.ID, nil
}

func (r *fakeAssignmentRepo) GetSupplementsByStudent(_ context.Context, studentID int64) ([]domain.StudentSupplement, error) {
	var out []domain.StudentSupplement
	for _, s := range r.supplements {
		if s.StudentID == studentID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) SetSupplementCompleted(_ context.Context, studentID, id int64, completed bool) error {
	s, ok := r.supplements[id]
	if !ok || s.StudentID != studentID {
		return repository.ErrNotFound
	}
	s.IsCompleted = completed
	return nil
}

func (r *fakeAssignmentRepo) DeleteSupplement(_ context.Context, studentID, id int64) error {
	s, ok := r.supplements[id]
	if !ok || s.StudentID != studentID {
		return repository.ErrNotFound
	}
	delete(r.supplements, id)
	return nil
}

func (r *fakeAssignmentRepo) ReplaceSupplements(_ context.Context, studentID int64, items []domain.StudentSupplement) ([]domain.StudentSupplement, error) {
	for id, s := range r.supplements {
		if s.StudentID == studentID {
			delete(r.supplements, id)
		}
	}
	out := make([]domain.StudentSupplement, 0, len(items))
	for _, item := range items {
		r.nextID++
		item.ID = r.nextID
		item.CreatedAt = time.Now()
		cp := item
		r.supplements[item.ID] = &cp
		out = append(out, item)
	}
	return out, nil
}

// --- fakePreferenceRepo ---

type prefKey struct {
	owner string
	key   string
}

type fakePreferenceRepo struct {
	nextID int64
	prefs  map[prefKey]*domain.UserPreference
}

func newFakePreferenceRepo() *fakePreferenceRepo {
	return &fakePreferenceRepo{prefs: make(map[prefKey]*domain.UserPreference)}
}

// ownerKey applies the same precedence as the SQL identityClause:
// session wins over user.
func ownerKey(id domain.PrefIdentity) string {
	if id.SessionID != "" {
		return "s:" + id.SessionID
	}
	if id.UserID != nil {
		return "u:" + strconv.FormatInt(*id.UserID, 10)
	}
	return ""
}

func (r *fakePreferenceRepo) Get(_ context.Context, id domain.PrefIdentity, key string) (*domain.UserPreference, error) {
	p, ok := r.prefs[prefKey{ownerKey(id), key}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePreferenceRepo) Set(_ context.Context, id domain.PrefIdentity, key, value string) (*domain.UserPreference, error) {
	k := prefKey{ownerKey(id), key}
	if p, ok := r.prefs[k]; ok {
		p.Value = value
		p.UpdatedAt = time.Now()
		cp := *p
		return &cp, nil
	}
	r.nextID++
	p := &domain.UserPreference{
		ID:        r.nextID,
		UserID:    id.UserID,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	if id.SessionID != "" {
		sid := id.SessionID
		p.SessionID = &sid
		p.UserID = nil
	}
	r.prefs[k] = p
	cp := *p
	return &cp, nil
}

func (r *fakePreferenceRepo) Remove(_ context.Context, id domain.PrefIdentity, key string) error {
	k := prefKey{ownerKey(id), key}
	if _, ok := r.prefs[k]; !ok {
		return repository.ErrNotFound
	}
	delete(r.prefs, k)
	return nil
}

func (r *fakePreferenceRepo) List(_ context.Context, id domain.PrefIdentity) ([]domain.UserPreference, error) {
	owner := ownerKey(id)
	var out []domain.UserPreference
	for k, p := range r.prefs {
		if k.owner == owner {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePreferenceRepo) RemoveAll(_ context.Context, id domain.PrefIdentity) error {
	owner := ownerKey(id)
	for k := range r.prefs {
		if k.owner == owner {
			delete(r.prefs, k)
		}
	}
	return nil
}

// --- fakeSupportRepo ---

type fakeSupportRepo struct {
	nextID    int64
	tickets   map[int64]*domain.SupportTicket
	responses map[int64]*domain.TicketResponse
	messages  map[int64]*domain.SupportMessage
}

func newFakeSupportRepo() *fakeSupportRepo {
	return &fakeSupportRepo{
		tickets:   make(map[int64]*domain.SupportTicket),
		responses: make(map[int64]*domain.TicketResponse),
		messages:  make(map[int64]*domain.SupportMessage),
	}
}

func (r *fakeSupportRepo) CreateTicket(_ context.Context, t *domain.SupportTicket) (int64, error) {
	for _, existing := range r.tickets {
		if existing.TicketNumber == t.TicketNumber {
			return 0, repository.ErrDuplicate
		}
	}
	r.nextID++
	t.ID = r.nextID
	t.CreatedAt = time.Now()
	cp := *t
	r.tickets[t.ID] = &cp
	return t.ID, nil
}

func (r *fakeSupportRepo) GetTicketByID(_ context.Context, id int64) (*domain.SupportTicket, error) {
	t, ok := r.tickets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeSupportRepo) GetTicketsByTrainerID(_ context.Context, trainerID int64) ([]domain.SupportTicket, error) {
	var out []domain.SupportTicket
	for _, t := range r.tickets {
		if t.TrainerID == trainerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeSupportRepo) GetTicketsByStudentID(_ context.Context, studentID int64) ([]domain.SupportTicket, error) {
	var out []domain.SupportTicket
	for _, t := range r.tickets {
		if t.StudentID == studentID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeSupportRepo) UpdateTicket(_ context.Context, id int64, update domain.TicketUpdate) (*domain.SupportTicket, error) {
	t, ok := r.tickets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if update.Category != nil {
		t.Category = *update.Category
	}
	if update.Priority != nil {
		t.Priority = *update.Priority
	}
	if update.Status != nil {
		t.Status = *update.Status
	}
	t.UpdatedAt = time.Now()
	cp := *t
	return &cp, nil
}

func (r *fakeSupportRepo) DeleteTicket(_ context.Context, id int64) error {
	if _, ok := r.tickets[id]; !ok {
		return repository.ErrNotFound
	}
	for respID, resp := range r.responses {
		if resp.TicketID == id {
			delete(r.responses, respID)
		}
	}
	delete(r.tickets, id)
	return nil
}

func (r *fakeSupportRepo) CreateResponse(_ context.Context, resp *domain.TicketResponse) (int64, error) {
	r.nextID++
	resp.ID = r.nextID
	resp.CreatedAt = time.Now()
	cp := *resp
	r.responses[resp.ID] = &cp
	return resp.ID, nil
}

func (r *fakeSupportRepo) GetResponsesByTicketID(_ context.Context, ticketID int64) ([]domain.TicketResponse, error) {
	var out []domain.TicketResponse
	for _, resp := range r.responses {
		if resp.TicketID == ticketID {
			out = append(out, *resp)
		}
	}
	return out, nil
}

func (r *fakeSupportRepo) CreateMessage(_ context.Context, m *domain.SupportMessage) (int64, error) {
	r.nextID++
	m.ID = r.nextID
	m.CreatedAt = time.Now()
	cp := *m
	r.messages[m.ID] = &cp
	return m.ID, nil
}

func (r *fakeSupportRepo) GetMessageByID(_ context.Context, id int64) (*domain.SupportMessage, error) {
	m, ok := r.messages[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeSupportRepo) GetMessagesByStudentID(_ context.Context, studentID int64) ([]domain.SupportMessage, error) {
	var out []domain.SupportMessage
	for _, m := range r.messages {
		if m.StudentID == studentID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeSupportRepo) GetMessagesByTrainerID(_ context.Context, trainerID int64) ([]domain.SupportMessage, error) {
	var out []domain.SupportMessage
	for _, m := range r.messages {
		if m.TrainerID == trainerID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeSupportRepo) MarkMessageRead(_ context.Context, id int64) error {
	m, ok := r.messages[id]
	if !ok {
		return repository.ErrNotFound
	}
	m.IsRead = true
	return nil
}

func (r *fakeSupportRepo) ClearByTrainerID(_ context.Context, trainerID int64) error {
	for id, t := range r.tickets {
		if t.TrainerID != trainerID {
			continue
		}
		for respID, resp := range r.responses {
			if resp.TicketID == id {
				delete(r.responses, respID)
			}
		}
		delete(r.tickets, id)
	}
	for id, m := range r.messages {
		if m.TrainerID == trainerID {
			delete(r.messages, id)
		}
	}
	return nil
}
