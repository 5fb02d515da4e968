package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"callcenter/internal/models"
	"callcenter/internal/pdf"
	"callcenter/internal/repositories"
)

// In-memory stand-ins for the repositories, keyed the same way the SQL tables are.

type fakeTaskRepo struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]models.Task
	err    error

	// beforeSave runs under the lock ahead of SaveLifecycle, standing in for a
	// concurrent writer.
	beforeSave func(tasks map[int64]models.Task)
}

func newFakeTaskRepo(tasks ...models.Task) *fakeTaskRepo {
	r := &fakeTaskRepo{tasks: map[int64]models.Task{}}
	for _, t := range tasks {
		r.tasks[t.ID] = t
		if t.ID > r.nextID {
			r.nextID = t.ID
		}
	}
	return r
}

func (r *fakeTaskRepo) Store(_ context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.nextID++
	task.ID = r.nextID
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) FindByID(_ context.Context, id int64) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	t, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *fakeTaskRepo) FindAll(_ context.Context, f models.TaskFilter) ([]models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []models.Task
	for _, t := range r.tasks {
		if f.AssigneeID != nil && t.AssigneeID != *f.AssigneeID {
			continue
		}
		if f.RetailerID != nil && t.RetailerID != *f.RetailerID {
			continue
		}
		if f.Status != nil && t.Status != *f.Status {
			continue
		}
		if f.Priority != nil && t.Priority != *f.Priority {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTaskRepo) SaveLifecycle(_ context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if r.beforeSave != nil {
		r.beforeSave(r.tasks)
	}
	cur, ok := r.tasks[task.ID]
	if !ok || cur.Status == models.StatusCompleted {
		return repositories.ErrNoRowsAffected
	}
	cur.Status, cur.Progress, cur.Outcome, cur.Comment, cur.UpdatedAt =
		task.Status, task.Progress, task.Outcome, task.Comment, task.UpdatedAt
	r.tasks[task.ID] = cur
	return nil
}

func (r *fakeTaskRepo) UpdateAssignee(_ context.Context, id int64, assigneeID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.tasks[id]
	if !ok {
		return repositories.ErrNoRowsAffected
	}
	cur.AssigneeID = assigneeID
	r.tasks[id] = cur
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return repositories.ErrNoRowsAffected
	}
	delete(r.tasks, id)
	return nil
}

type fakeRetailerRepo struct {
	mu        sync.Mutex
	retailers map[string]models.Retailer
	calledAt  map[string]time.Time
}

func newFakeRetailerRepo(list ...models.Retailer) *fakeRetailerRepo {
	r := &fakeRetailerRepo{retailers: map[string]models.Retailer{}, calledAt: map[string]time.Time{}}
	for _, x := range list {
		r.retailers[x.RetailerID] = x
	}
	return r
}

func (r *fakeRetailerRepo) Create(_ context.Context, x *models.Retailer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	x.ID = int64(len(r.retailers) + 1)
	r.retailers[x.RetailerID] = *x
	return nil
}

func (r *fakeRetailerRepo) Update(_ context.Context, x *models.Retailer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.retailers[x.RetailerID] = *x
	return nil
}

func (r *fakeRetailerRepo) GetByRetailerID(_ context.Context, id string) (*models.Retailer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	x, ok := r.retailers[id]
	if !ok {
		return nil, nil
	}
	return &x, nil
}

func (r *fakeRetailerRepo) List(_ context.Context, agentID *int64) ([]models.Retailer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Retailer
	for _, x := range r.retailers {
		if agentID != nil && (x.AgentID == nil || *x.AgentID != *agentID) {
			continue
		}
		out = append(out, x)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RetailerID < out[j].RetailerID })
	return out, nil
}

func (r *fakeRetailerRepo) UpdateLastCallDate(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calledAt[id] = at
	if x, ok := r.retailers[id]; ok {
		x.LastCallDate = &at
		r.retailers[id] = x
	}
	return nil
}

type fakeCallLogRepo struct {
	mu   sync.Mutex
	logs []models.CallLog
	err  error

	// tasks resolves the task filter of CountOutcomes, like the SQL join.
	tasks *fakeTaskRepo
}

func (r *fakeCallLogRepo) Create(_ context.Context, l *models.CallLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	l.ID = int64(len(r.logs) + 1)
	r.logs = append(r.logs, *l)
	return nil
}

func (r *fakeCallLogRepo) ListByTask(_ context.Context, taskID int64) ([]models.CallLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.CallLog
	for _, l := range r.logs {
		if l.TaskID == taskID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeCallLogRepo) CountOutcomes(ctx context.Context, f models.TaskFilter) (map[models.Outcome]int, error) {
	matched := map[int64]bool{}
	if r.tasks != nil {
		tasks, err := r.tasks.FindAll(ctx, f)
		if err != nil {
			return nil, err
		}
		for _, t := range tasks {
			matched[t.ID] = true
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	res := map[models.Outcome]int{}
	for _, l := range r.logs {
		if r.tasks != nil && !matched[l.TaskID] {
			continue
		}
		if l.Kind == models.CallCompleted && l.Outcome != nil {
			res[*l.Outcome]++
		}
	}
	return res, nil
}

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]models.User
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[int64]models.User{}}
	for _, u := range users {
		r.users[u.ID] = u
		if u.ID > r.nextID {
			r.nextID = u.ID
		}
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	u.ID = r.nextID
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(_ context.Context, roleID *int) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, u := range r.users {
		if roleID != nil && u.RoleID != *roleID {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) UpdateRefresh(_ context.Context, userID int64, token string, exp time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.users[userID]
	u.RefreshToken, u.RefreshExpiresAt, u.RefreshRevoked = &token, &exp, false
	r.users[userID] = u
	return nil
}

func (r *fakeUserRepo) RotateRefresh(_ context.Context, oldToken, newToken string, exp time.Time) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, u := range r.users {
		if u.RefreshToken != nil && *u.RefreshToken == oldToken {
			u.RefreshToken, u.RefreshExpiresAt = &newToken, &exp
			r.users[id] = u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByRefreshToken(_ context.Context, token string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.RefreshToken != nil && *u.RefreshToken == token {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetTelegramChatID(_ context.Context, userID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[userID].TelegramChatID, nil
}

type sentMessage struct {
	chatID int64
	text   string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (n *fakeNotifier) Notify(chatID int64, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

type sentMail struct {
	to, name, attachment string
}

type fakeMailer struct {
	welcome []sentMail
	reports []sentMail
	err     error
}

func (m *fakeMailer) SendWelcomeEmail(email, fullName string) error {
	m.welcome = append(m.welcome, sentMail{to: email, name: fullName})
	return m.err
}

func (m *fakeMailer) SendReportEmail(email, agentName, attachmentPath string) error {
	if m.err != nil {
		return m.err
	}
	m.reports = append(m.reports, sentMail{to: email, name: agentName, attachment: attachmentPath})
	return nil
}

type fakePDF struct {
	last pdf.AgentReportData
	err  error
}

func (g *fakePDF) GenerateAgentReport(data pdf.AgentReportData) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	g.last = data
	return "/tmp/agent_report.pdf", nil
}

var errBoom = errors.New("boom")

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }
