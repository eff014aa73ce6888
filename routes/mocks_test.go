package routes

import (
	"sort"
	"sync"
	"time"

	"collegesphere/models"
)

/* in-memory repositories implementing the models interfaces */

type mockUserRepo struct {
	mu   sync.Mutex
	seq  int64
	byID map[int64]models.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{byID: map[int64]models.User{}}
}

func (m *mockUserRepo) Create(u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return models.ErrEmailExists
		}
	}
	m.seq++
	u.ID = m.seq
	u.CreatedAt = time.Now().UTC()
	m.byID[u.ID] = *u
	return nil
}

func (m *mockUserRepo) GetByEmail(email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, models.ErrNotFound
}

func (m *mockUserRepo) GetByID(id int64) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return models.User{}, models.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) UpdateProfile(id int64, name, collegeID string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return models.User{}, models.ErrNotFound
	}
	u.Name = name
	u.CollegeID = collegeID
	m.byID[id] = u
	return u, nil
}

func (m *mockUserRepo) UpdatePassword(id int64, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return models.ErrNotFound
	}
	u.Password = passwordHash
	m.byID[id] = u
	return nil
}

func (m *mockUserRepo) SetApproval(id int64, approved bool) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return models.User{}, models.ErrNotFound
	}
	u.IsApproved = approved
	m.byID[id] = u
	return u, nil
}

func (m *mockUserRepo) ListOrganizers(approved bool) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.User{}
	for _, u := range m.byID {
		if u.Role == models.RoleOrganizer && u.IsApproved == approved {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockUserRepo) CountByRole(role models.Role) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, u := range m.byID {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type mockCollegeRepo struct {
	mu   sync.Mutex
	byID map[string]models.College
}

func newMockCollegeRepo() *mockCollegeRepo {
	return &mockCollegeRepo{byID: map[string]models.College{}}
}

func (m *mockCollegeRepo) Create(c *models.College) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Name == c.Name {
			return models.ErrCollegeExists
		}
	}
	m.byID[c.ID] = *c
	return nil
}

func (m *mockCollegeRepo) GetByID(id string) (models.College, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return models.College{}, models.ErrNotFound
	}
	return c, nil
}

func (m *mockCollegeRepo) GetAll() ([]models.College, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.College{}
	for _, c := range m.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockCollegeRepo) Count() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.byID)), nil
}

type mockEventRepo struct {
	mu   sync.Mutex
	byID map[string]models.Event
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{byID: map[string]models.Event{}}
}

func (m *mockEventRepo) Create(e *models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[e.ID] = *e
	return nil
}

func (m *mockEventRepo) GetByID(id string) (models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.byID[id]
	if !ok {
		return models.Event{}, models.ErrNotFound
	}
	return e, nil
}

func (m *mockEventRepo) Update(e *models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[e.ID]; !ok {
		return models.ErrNotFound
	}
	m.byID[e.ID] = *e
	return nil
}

func (m *mockEventRepo) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *mockEventRepo) SetApproval(id string, approved bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.byID[id]
	if !ok {
		return models.ErrNotFound
	}
	e.IsApproved = approved
	m.byID[id] = e
	return nil
}

func (m *mockEventRepo) list(match func(models.Event) bool) []models.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Event{}
	for _, e := range m.byID {
		if match(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (m *mockEventRepo) ListByApproval(approved bool) ([]models.Event, error) {
	return m.list(func(e models.Event) bool { return e.IsApproved == approved }), nil
}

func (m *mockEventRepo) ListByCollege(collegeID string) ([]models.Event, error) {
	return m.list(func(e models.Event) bool { return e.CollegeID == collegeID && e.IsApproved }), nil
}

func (m *mockEventRepo) ListByCreator(userID int64) ([]models.Event, error) {
	return m.list(func(e models.Event) bool { return e.CreatedBy == userID }), nil
}

func (m *mockEventRepo) CountByApproval(approved bool) (int64, error) {
	return int64(len(m.list(func(e models.Event) bool { return e.IsApproved == approved }))), nil
}

type mockRegRepo struct {
	mu   sync.Mutex
	seq  int64
	byID map[int64]models.Registration
}

func newMockRegRepo() *mockRegRepo {
	return &mockRegRepo{byID: map[int64]models.Registration{}}
}

func (m *mockRegRepo) Create(r *models.Registration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.UserID == r.UserID && existing.EventID == r.EventID {
			return models.ErrAlreadyRegistered
		}
	}
	m.seq++
	r.ID = m.seq
	r.CreatedAt = time.Now().UTC()
	m.byID[r.ID] = *r
	return nil
}

func (m *mockRegRepo) Exists(userID int64, eventID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.byID {
		if r.UserID == userID && r.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRegRepo) DeleteOwned(id, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.byID[id]
	if !ok || r.UserID != userID {
		return models.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *mockRegRepo) list(match func(models.Registration) bool) []models.Registration {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Registration{}
	for _, r := range m.byID {
		if match(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (m *mockRegRepo) ListByUser(userID int64) ([]models.Registration, error) {
	return m.list(func(r models.Registration) bool { return r.UserID == userID }), nil
}

func (m *mockRegRepo) ListByEvent(eventID string) ([]models.Registration, error) {
	return m.list(func(r models.Registration) bool { return r.EventID == eventID }), nil
}

func (m *mockRegRepo) CountByEvent(eventID string) (int64, error) {
	return int64(len(m.list(func(r models.Registration) bool { return r.EventID == eventID }))), nil
}

func (m *mockRegRepo) Count() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.byID)), nil
}
