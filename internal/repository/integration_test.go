//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/beluleung/ISOM5260-project/internal/model"
	"github.com/beluleung/ISOM5260-project/internal/repository"
	"github.com/beluleung/ISOM5260-project/internal/service"
	"github.com/beluleung/ISOM5260-project/pkg/database"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=club password=club_password dbname=recreation_club_test sslmode=disable TimeZone=Asia/Hong_Kong"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	sqlDB, err := testDB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "获取 sql.DB 失败: %v\n", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		fmt.Fprintf(os.Stderr, "迁移失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// resetTables 清空业务表
func resetTables(t *testing.T) {
	t.Helper()
	if err := testDB.Exec("TRUNCATE signup, instructoractivity, instructor, activity, member").Error; err != nil {
		t.Fatalf("清空数据表失败: %v", err)
	}
}

func newMember(id int64, email string) *model.Member {
	join := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	return &model.Member{
		MemberID:   id,
		FirstName:  "Amy",
		LastName:   "Chan",
		Gender:     model.GenderFemale,
		Phone:      "555-123-4567",
		Email:      email,
		JoinDate:   join,
		ExpireDate: join.Add(model.MembershipTerm),
		Status:     model.MemberStatusActive,
	}
}

func newActivity(id int64, name string) *model.Activity {
	day := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)
	return &model.Activity{
		ActivityID:   id,
		ActivityName: name,
		ActivityDate: day,
		StartTime:    day.Add(9 * time.Hour),
		EndTime:      day.Add(10 * time.Hour),
		Location:     "Hall A",
		Price:        decimal.RequireFromString("80.00"),
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Sequence Reconciliation
// ═══════════════════════════════════════════════════════════

func TestSequence_BehindTableIsAdvanced(t *testing.T) {
	resetTables(t)
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	// 手工导入 memberid=50，序列仍停在 10
	if err := repo.Member.Create(ctx, newMember(50, "seed@example.com")); err != nil {
		t.Fatalf("导入会员失败: %v", err)
	}
	if err := testDB.Exec("SELECT setval('member_seq', 10)").Error; err != nil {
		t.Fatalf("重置序列失败: %v", err)
	}

	var id int64
	err := repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		var err error
		id, err = tx.Sequence.NextID(ctx, repository.MemberSequence)
		if err != nil {
			return err
		}
		return tx.Member.Create(ctx, newMember(id, "new@example.com"))
	})
	if err != nil {
		t.Fatalf("事务内注册失败: %v", err)
	}
	if id != 51 {
		t.Errorf("期望新主键 51，实际 %d", id)
	}

	var next int64
	testDB.Raw("SELECT nextval('member_seq')").Scan(&next)
	if next != 52 {
		t.Errorf("期望序列下一个值 52，实际 %d", next)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Transaction
// ═══════════════════════════════════════════════════════════

func TestTransaction_Rollback(t *testing.T) {
	resetTables(t)
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	boom := errors.New("boom")
	err := repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Member.Create(ctx, newMember(1, "rollback@example.com")); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("期望返回 boom，实际 %v", err)
	}

	if _, err := repo.Member.GetByID(ctx, 1); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("期望回滚后查不到会员，实际 err=%v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Constraint Translation
// ═══════════════════════════════════════════════════════════

func TestMember_DuplicateEmail(t *testing.T) {
	resetTables(t)
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	if err := repo.Member.Create(ctx, newMember(1, "dup@example.com")); err != nil {
		t.Fatalf("创建会员失败: %v", err)
	}
	err := repo.Member.Create(ctx, newMember(2, "dup@example.com"))
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("期望 ErrDuplicatedKey，实际 %v", err)
	}
}

func TestSignUp_UnknownMember(t *testing.T) {
	resetTables(t)
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	if err := repo.Activity.Create(ctx, newActivity(1, "Yoga")); err != nil {
		t.Fatalf("创建活动失败: %v", err)
	}
	err := repo.SignUp.Create(ctx, &model.SignUp{SignUpID: 1, MemberID: 999, ActivityID: 1, SignupDate: time.Now()})
	if !errors.Is(err, gorm.ErrForeignKeyViolated) {
		t.Fatalf("期望 ErrForeignKeyViolated，实际 %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Activity Listing & Report
// ═══════════════════════════════════════════════════════════

func TestActivity_ListViewsAndReport(t *testing.T) {
	resetTables(t)
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	if err := repo.Activity.Create(ctx, newActivity(1, "Yoga")); err != nil {
		t.Fatalf("创建活动失败: %v", err)
	}
	if err := repo.Activity.Create(ctx, newActivity(2, "Badminton")); err != nil {
		t.Fatalf("创建活动失败: %v", err)
	}
	testDB.Create(&model.Instructor{InstructorID: 1, FirstName: "Ben", LastName: "Wong"})
	testDB.Create(&model.InstructorActivity{InstructorID: 1, ActivityID: 1})

	views, err := repo.Activity.ListViews(ctx)
	if err != nil {
		t.Fatalf("ListViews 失败: %v", err)
	}
	// 无教练的活动不出现在浏览列表中
	if len(views) != 1 || views[0].Instructor != "Ben Wong" {
		t.Fatalf("期望仅 1 条 Yoga/Ben Wong，实际 %+v", views)
	}

	options, err := repo.Activity.ListOptions(ctx)
	if err != nil {
		t.Fatalf("ListOptions 失败: %v", err)
	}
	if len(options) != 2 || options[0].ActivityName != "Badminton" {
		t.Errorf("期望按名称排序的 2 个选项，实际 %+v", options)
	}

	if err := repo.Member.Create(ctx, newMember(1, "amy@example.com")); err != nil {
		t.Fatalf("创建会员失败: %v", err)
	}
	if err := repo.SignUp.Create(ctx, &model.SignUp{SignUpID: 1, MemberID: 1, ActivityID: 1, SignupDate: time.Now()}); err != nil {
		t.Fatalf("创建报名失败: %v", err)
	}

	n, err := repo.SignUp.CountByActivity(ctx, 1)
	if err != nil || n != 1 {
		t.Fatalf("期望 1 条报名，实际 n=%d err=%v", n, err)
	}

	rows, err := repo.SignUp.ListReport(ctx)
	if err != nil {
		t.Fatalf("ListReport 失败: %v", err)
	}
	if len(rows) != 1 || rows[0].MemberName != "Amy Chan" || rows[0].ActivityName != "Yoga" {
		t.Errorf("报表内容不符: %+v", rows)
	}
}

func TestActivity_ListIsRepeatable(t *testing.T) {
	resetTables(t)
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	// 同日的 3 号与 1 号活动，3 号有两位教练
	for _, a := range []*model.Activity{newActivity(3, "Yoga"), newActivity(1, "Pilates")} {
		if err := repo.Activity.Create(ctx, a); err != nil {
			t.Fatalf("创建活动失败: %v", err)
		}
	}
	testDB.Create(&model.Instructor{InstructorID: 2, FirstName: "Dora", LastName: "Ho"})
	testDB.Create(&model.Instructor{InstructorID: 1, FirstName: "Ben", LastName: "Wong"})
	testDB.Create(&model.InstructorActivity{InstructorID: 2, ActivityID: 3})
	testDB.Create(&model.InstructorActivity{InstructorID: 1, ActivityID: 3})
	testDB.Create(&model.InstructorActivity{InstructorID: 2, ActivityID: 1})

	svc := service.NewService(repo, nil, zap.NewNop())
	first, err := svc.Activity.List(ctx)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	second, err := svc.Activity.List(ctx)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("无写入时两次结果应完全一致:\n%+v\n%+v", first, second)
	}

	want := []struct {
		id         int64
		instructor string
	}{{1, "Dora Ho"}, {3, "Ben Wong"}, {3, "Dora Ho"}}
	if len(first) != len(want) {
		t.Fatalf("期望 %d 条，实际 %+v", len(want), first)
	}
	for i, w := range want {
		if first[i].ID != w.id || first[i].Instructor != w.instructor {
			t.Errorf("第 %d 条期望 %d/%s，实际 %d/%s", i, w.id, w.instructor, first[i].ID, first[i].Instructor)
		}
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Read-only Query
// ═══════════════════════════════════════════════════════════

func TestQuery_ReadOnlyRejectsWrites(t *testing.T) {
	resetTables(t)
	repo := repository.NewRepository(testDB, repository.WithStatementTimeout(2*time.Second))
	ctx := context.Background()

	result, err := repo.Query.RunReadOnly(ctx, "SELECT 1 AS one")
	if err != nil {
		t.Fatalf("SELECT 1 失败: %v", err)
	}
	if len(result.Rows) != 1 || result.Columns[0] != "one" {
		t.Errorf("结果不符: %+v", result)
	}

	// 文本校验之外，只读事务本身也拒绝写入
	if _, err := repo.Query.RunReadOnly(ctx, "SELECT setval('member_seq', 1000)"); err == nil {
		t.Error("只读事务中修改序列应失败")
	}
}
