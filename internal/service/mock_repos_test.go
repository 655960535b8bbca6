package service

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/beluleung/ISOM5260-project/internal/model"
	"github.com/beluleung/ISOM5260-project/internal/repository"
)

// ── Mock MemberRepository ──

type mockMemberRepo struct {
	members   map[int64]*model.Member
	createErr error
	countErr  error
}

func newMockMemberRepo() *mockMemberRepo {
	return &mockMemberRepo{members: make(map[int64]*model.Member)}
}

func (m *mockMemberRepo) Create(_ context.Context, member *model.Member) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.members[member.MemberID] = member
	return nil
}

func (m *mockMemberRepo) GetByID(_ context.Context, id int64) (*model.Member, error) {
	if member, ok := m.members[id]; ok {
		return member, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMemberRepo) GetByEmail(_ context.Context, email string) (*model.Member, error) {
	for _, member := range m.members {
		if member.Email == email {
			return member, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMemberRepo) CountByEmail(_ context.Context, email string) (int64, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	var n int64
	for _, member := range m.members {
		if member.Email == email {
			n++
		}
	}
	return n, nil
}

// ── Mock ActivityRepository ──

// 接口只包含被 Service 使用的方法
var _ repository.ActivityRepository = (*mockActivityRepo)(nil)

type mockActivityRepo struct {
	activities map[int64]*model.Activity
	views      []model.ActivityView
	listErr    error
	deleteErr  error
}

func newMockActivityRepo() *mockActivityRepo {
	return &mockActivityRepo{activities: make(map[int64]*model.Activity)}
}

func (m *mockActivityRepo) Create(_ context.Context, activity *model.Activity) error {
	m.activities[activity.ActivityID] = activity
	return nil
}

func (m *mockActivityRepo) GetByID(_ context.Context, id int64) (*model.Activity, error) {
	if a, ok := m.activities[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockActivityRepo) Update(_ context.Context, activity *model.Activity) (int64, error) {
	if _, ok := m.activities[activity.ActivityID]; !ok {
		return 0, nil
	}
	m.activities[activity.ActivityID] = activity
	return 1, nil
}

func (m *mockActivityRepo) Delete(_ context.Context, id int64) (int64, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	if _, ok := m.activities[id]; !ok {
		return 0, nil
	}
	delete(m.activities, id)
	return 1, nil
}

func (m *mockActivityRepo) ListViews(_ context.Context) ([]model.ActivityView, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.views, nil
}

func (m *mockActivityRepo) ListOptions(_ context.Context) ([]model.ActivityOption, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := make([]model.ActivityOption, 0, len(m.activities))
	for _, a := range m.activities {
		result = append(result, model.ActivityOption{ActivityID: a.ActivityID, ActivityName: a.ActivityName})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ActivityName < result[j].ActivityName })
	return result, nil
}

// ── Mock SignUpRepository ──

type mockSignUpRepo struct {
	signups   []model.SignUp
	report    []model.SignUpReportRow
	createErr error
	countErr  error
}

func newMockSignUpRepo() *mockSignUpRepo {
	return &mockSignUpRepo{}
}

func (m *mockSignUpRepo) Create(_ context.Context, signup *model.SignUp) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.signups = append(m.signups, *signup)
	return nil
}

func (m *mockSignUpRepo) CountByActivity(_ context.Context, activityID int64) (int64, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	var n int64
	for _, s := range m.signups {
		if s.ActivityID == activityID {
			n++
		}
	}
	return n, nil
}

func (m *mockSignUpRepo) ListReport(_ context.Context) ([]model.SignUpReportRow, error) {
	return m.report, nil
}

// ── Mock QueryRepository ──

type mockQueryRepo struct {
	result     *model.QueryResult
	err        error
	statements []string
}

func newMockQueryRepo() *mockQueryRepo {
	return &mockQueryRepo{}
}

func (m *mockQueryRepo) RunReadOnly(_ context.Context, statement string) (*model.QueryResult, error) {
	m.statements = append(m.statements, statement)
	if m.err != nil {
		return nil, m.err
	}
	if m.result == nil {
		return &model.QueryResult{Columns: []string{}, Rows: [][]interface{}{}}, nil
	}
	return m.result, nil
}

// ── Mock SequenceRepository ──

// mockSequenceRepo 每个序列从 1 开始递增
type mockSequenceRepo struct {
	next map[string]int64
	err  error
}

func newMockSequenceRepo() *mockSequenceRepo {
	return &mockSequenceRepo{next: make(map[string]int64)}
}

func (m *mockSequenceRepo) NextID(_ context.Context, seq repository.Sequence) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.next[seq.Name()]++
	return m.next[seq.Name()], nil
}

// ── Mock Transactor ──

// mockTransactor 直接在同一组 mock 上执行 fn
type mockTransactor struct {
	repo  *repository.Repository
	calls int
}

func (m *mockTransactor) WithinTx(_ context.Context, fn func(tx *repository.Repository) error) error {
	m.calls++
	return fn(m.repo)
}

// ── 聚合 ──

type mockRepos struct {
	member   *mockMemberRepo
	activity *mockActivityRepo
	signup   *mockSignUpRepo
	query    *mockQueryRepo
	sequence *mockSequenceRepo
	tx       *mockTransactor
}

func newMockRepository() (*repository.Repository, *mockRepos) {
	mocks := &mockRepos{
		member:   newMockMemberRepo(),
		activity: newMockActivityRepo(),
		signup:   newMockSignUpRepo(),
		query:    newMockQueryRepo(),
		sequence: newMockSequenceRepo(),
		tx:       &mockTransactor{},
	}
	repo := &repository.Repository{
		Member:   mocks.member,
		Activity: mocks.activity,
		SignUp:   mocks.signup,
		Query:    mocks.query,
		Sequence: mocks.sequence,
		Tx:       mocks.tx,
	}
	mocks.tx.repo = repo
	return repo, mocks
}

// ── Mock EventRecorder ──

type mockRecorder struct {
	events map[string]int
}

func newMockRecorder() *mockRecorder {
	return &mockRecorder{events: make(map[string]int)}
}

func (m *mockRecorder) Record(event string) {
	m.events[event]++
}
