package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"job-admin-go/internal/config"
	"job-admin-go/internal/constants"
	"job-admin-go/internal/section"
	"job-admin-go/internal/service"
	"job-admin-go/internal/storage"
	"job-admin-go/internal/storage/models"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServices 构造依赖真实MySQL的应用服务，MySQL不可用时跳过用例。
// Redis为nil走降级路径，不影响创建与校验语义
func newTestServices(t *testing.T) (*service.JobService, *service.StudentService, *storage.MySQL) {
	t.Helper()

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	m, err := storage.NewMySQL(&cfg.MySQL)
	if err != nil {
		t.Skipf("MySQL不可用，跳过集成测试: %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })

	return service.NewJobService(m, nil, cfg), service.NewStudentService(m, nil, cfg), m
}

// randomSuffix 取uuidv7随机尾部做测试数据的唯一后缀
func randomSuffix(t *testing.T) string {
	t.Helper()
	id, err := uuid.NewV7()
	require.NoError(t, err)
	return id.String()[28:]
}

// seedTaxonomy 登记一对类别/子类别字典项
func seedTaxonomy(t *testing.T, m *storage.MySQL, category, subCategory string) {
	t.Helper()
	ctx := context.Background()

	cat := &models.JobCategory{Name: category}
	require.NoError(t, m.CreateJobCategory(ctx, cat))
	t.Cleanup(func() { _, _ = m.DeleteJobCategory(ctx, cat.ID) })

	sub := &models.JobSubCategory{Name: subCategory, CategoryName: category}
	require.NoError(t, m.CreateJobSubCategory(ctx, sub))
	t.Cleanup(func() { _, _ = m.DeleteJobSubCategory(ctx, sub.ID) })
}

func TestJobCreateServerDefaults(t *testing.T) {
	jobs, _, m := newTestServices(t)
	ctx := context.Background()

	suffix := randomSuffix(t)
	category := "集成类别-" + suffix
	subCategory := "集成子类别-" + suffix
	seedTaxonomy(t, m, category, subCategory)

	before := time.Now().Unix()
	job, err := jobs.Create(ctx, service.CreateJobInput{
		Title:            "初级文员",
		ShortDescription: "负责档案录入",
		AdvtNo:           "ADV/" + suffix,
		Organization:     "测试机构",
		JobType:          "Permanent",
		Sector:           "State Govt",
		Category:         category,
		SubCategory:      subCategory,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = jobs.Delete(ctx, job.JobID) })

	// 服务端默认值：status=0、posted_date=now、分段字段保持零值
	assert.Equal(t, constants.JobStatusActive, job.Status)
	assert.GreaterOrEqual(t, job.PostedDate, before)
	assert.LessOrEqual(t, job.PostedDate, time.Now().Unix())
	assert.Equal(t, job.PostedDate, job.JobLastUpdatedDate)
	assert.Zero(t, job.FeeGeneral)
	assert.Zero(t, job.ApplicationStartDate)
	assert.Empty(t, job.PostName)

	// 完成标记覆盖全部分段且初值为0
	stored, err := jobs.Get(ctx, job.JobID)
	require.NoError(t, err)
	require.Len(t, stored.SectionCompletion, len(section.JobSections))
	for _, name := range section.JobSections {
		assert.EqualValues(t, 0, section.Num(stored.SectionCompletion[string(name)]), "分段 %s 的初始标记应为0", name)
	}
}

func TestJobCreateRejectsUnregisteredCategory(t *testing.T) {
	jobs, _, m := newTestServices(t)
	ctx := context.Background()

	suffix := randomSuffix(t)
	seedTaxonomy(t, m, "登记类别-"+suffix, "登记子类别-"+suffix)

	_, err := jobs.Create(ctx, service.CreateJobInput{
		Title:            "初级文员",
		ShortDescription: "负责档案录入",
		AdvtNo:           "ADV/" + suffix,
		Organization:     "测试机构",
		JobType:          "Permanent",
		Sector:           "State Govt",
		Category:         "未登记类别-" + suffix,
		SubCategory:      "登记子类别-" + suffix,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrValidation), "字典表非空时表外类别应当被拒绝")
}

func TestStudentCreateRejectsUnknownReferralCode(t *testing.T) {
	_, students, m := newTestServices(t)
	ctx := context.Background()

	suffix := randomSuffix(t)
	email := "referral-" + suffix + "@example.com"

	_, err := students.Create(ctx, service.CreateStudentInput{
		FirstName:      "测试",
		Email:          email,
		Mobile:         "98" + suffix,
		Password:       "secret123",
		JobType:        "Permanent",
		ReferredByCode: "JPNO" + suffix,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrValidation), "指向不存在推荐码的注册应当被拒绝")
	assert.Contains(t, err.Error(), "无效的推荐码")

	// 拒绝发生在任何写入之前，不应留下学员记录
	var count int64
	require.NoError(t, m.DB().Model(&models.Student{}).
		Where("email = ?", email).Count(&count).Error)
	assert.Zero(t, count)
}
