package storage_test

import (
	"context"
	"testing"
	"time"

	"job-admin-go/internal/config"
	"job-admin-go/internal/section"
	"job-admin-go/internal/storage"
	"job-admin-go/internal/storage/models"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

// newTestMySQL 连接测试库，MySQL不可用时跳过整个用例
func newTestMySQL(t *testing.T) *storage.MySQL {
	t.Helper()

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	m, err := storage.NewMySQL(&cfg.MySQL)
	if err != nil {
		t.Skipf("MySQL不可用，跳过集成测试: %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })
	return m
}

// seedJob 插入一条最小可用的岗位记录
func seedJob(t *testing.T, m *storage.MySQL) *models.JobPosting {
	t.Helper()

	id, err := uuid.NewV7()
	require.NoError(t, err)

	now := time.Now().Unix()
	job := &models.JobPosting{
		JobID:              id.String(),
		Title:              "集成测试岗位",
		AdvtNo:             "IT/" + id.String()[:8],
		Organization:       "测试机构",
		JobType:            "Permanent",
		Sector:             "State Govt",
		Category:           "Clerical",
		SubCategory:        "LDC",
		PostedDate:         now,
		JobLastUpdatedDate: now,
		SectionCompletion:  datatypes.JSONMap{},
	}
	require.NoError(t, m.CreateJob(context.Background(), job))
	t.Cleanup(func() { _, _ = m.DeleteJob(context.Background(), job.JobID) })
	return job
}

// seedStudent 插入一条最小可用的学员记录
func seedStudent(t *testing.T, m *storage.MySQL) *models.Student {
	t.Helper()

	id, err := uuid.NewV7()
	require.NoError(t, err)
	// uuidv7前缀是时间戳位，同一毫秒会重复，取随机的尾部做唯一后缀
	suffix := id.String()[28:]

	now := time.Now().Unix()
	student := &models.Student{
		StudentID:         id.String(),
		FirstName:         "测试",
		Email:             "it-" + suffix + "@example.com",
		Mobile:            "99" + suffix,
		PasswordHash:      "x",
		JobTypeRef:        "Permanent",
		ReferralCode:      "JPIT" + suffix,
		ProfileCompletion: datatypes.JSONMap{},
		CreatedDate:       now,
		LastUpdated:       now,
	}
	require.NoError(t, m.CreateStudent(context.Background(), student, nil))
	t.Cleanup(func() { _, _ = m.PurgeStudent(context.Background(), student.StudentID) })
	return student
}

func TestSaveJobSectionFlagsAndTouch(t *testing.T) {
	m := newTestMySQL(t)
	ctx := context.Background()
	job := seedJob(t, m)

	updates, err := section.MapJob("eligibility", map[string]any{
		"ageMin":        float64(18),
		"ageMax":        float64(32),
		"qualification": "Graduate",
	})
	require.NoError(t, err)

	saved, err := m.SaveJobSection(ctx, job.JobID, updates, "eligibility", nil)
	require.NoError(t, err)
	assert.Equal(t, 18, saved.AgeMin)
	assert.Equal(t, 32, saved.AgeMax)
	// 未被映射到的列保持创建时的值
	assert.Equal(t, job.Title, saved.Title)
	// 完成标记置1，last_updated被盖章
	assert.EqualValues(t, 1, section.Num(saved.SectionCompletion["eligibility"]))
	assert.GreaterOrEqual(t, saved.JobLastUpdatedDate, job.JobLastUpdatedDate)

	// 重复保存同一分段幂等：标记仍为1，其他分段的标记不受影响
	again, err := m.SaveJobSection(ctx, job.JobID, updates, "eligibility", nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, section.Num(again.SectionCompletion["eligibility"]))
	assert.NotContains(t, again.SectionCompletion, "salary")

	// 保存另一个分段不影响已写入的eligibility列
	salaryUpdates, err := section.MapJob("salary", map[string]any{"salaryMin": float64(25000)})
	require.NoError(t, err)
	after, err := m.SaveJobSection(ctx, job.JobID, salaryUpdates, "salary", nil)
	require.NoError(t, err)
	assert.Equal(t, 18, after.AgeMin)
	assert.Equal(t, 25000, after.SalaryMin)
	assert.EqualValues(t, 1, section.Num(after.SectionCompletion["eligibility"]))
	assert.EqualValues(t, 1, section.Num(after.SectionCompletion["salary"]))
}

func TestRemoveJobArrayItemBounds(t *testing.T) {
	m := newTestMySQL(t)
	ctx := context.Background()
	job := seedJob(t, m)

	_, err := m.AppendJobFiles(ctx, job.JobID, []string{"uploads/jobs/a.pdf", "uploads/jobs/b.pdf", "uploads/jobs/c.pdf"})
	require.NoError(t, err)

	// 越界下标
	_, err = m.RemoveJobArrayItem(ctx, job.JobID, "files", 3)
	assert.ErrorIs(t, err, storage.ErrArrayIndexOutOfRange)

	// 合法删除保持剩余元素顺序
	updated, err := m.RemoveJobArrayItem(ctx, job.JobID, "files", 1)
	require.NoError(t, err)
	files, err := models.JSONToStringSlice(updated.Files)
	require.NoError(t, err)
	assert.Equal(t, []string{"uploads/jobs/a.pdf", "uploads/jobs/c.pdf"}, files)
}

func TestStudentSatelliteUpsertSingleRow(t *testing.T) {
	m := newTestMySQL(t)
	ctx := context.Background()
	student := seedStudent(t, m)

	save := func(city string) *models.Student {
		upd, err := section.MapStudent(student.StudentID, "address", map[string]any{
			"current": map[string]any{"city": city},
		})
		require.NoError(t, err)
		saved, err := m.SaveStudentSection(ctx, upd, nil)
		require.NoError(t, err)
		return saved
	}

	first := save("Pune")
	assert.EqualValues(t, 1, section.Num(first.ProfileCompletion["studentAddressData"]))

	// 重复保存走整行更新，卫星表里该学员只会有一行
	second := save("Nagpur")
	assert.EqualValues(t, 1, section.Num(second.ProfileCompletion["studentAddressData"]))

	var count int64
	require.NoError(t, m.DB().Model(&models.StudentAddress{}).
		Where("student_id = ?", student.StudentID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var addr models.StudentAddress
	require.NoError(t, m.GetStudentSatellite(ctx, student.StudentID, &addr))
	assert.Equal(t, "Nagpur", addr.CurrentCity)
}

func TestDeleteStudentLeavesSatellitesPurgeRemovesAll(t *testing.T) {
	m := newTestMySQL(t)
	ctx := context.Background()
	student := seedStudent(t, m)

	upd, err := section.MapStudent(student.StudentID, "skills", map[string]any{
		"skills": []any{"typing", "excel"},
	})
	require.NoError(t, err)
	_, err = m.SaveStudentSection(ctx, upd, nil)
	require.NoError(t, err)

	// 根文档删除不级联卫星记录
	affected, err := m.DeleteStudent(ctx, student.StudentID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	var count int64
	require.NoError(t, m.DB().Model(&models.StudentSkills{}).
		Where("student_id = ?", student.StudentID).Count(&count).Error)
	assert.EqualValues(t, 1, count, "根文档删除后卫星记录应保留")

	// 显式清理把残留的卫星记录一并移除
	_, err = m.PurgeStudent(ctx, student.StudentID)
	require.NoError(t, err)
	require.NoError(t, m.DB().Model(&models.StudentSkills{}).
		Where("student_id = ?", student.StudentID).Count(&count).Error)
	assert.Zero(t, count)
}
