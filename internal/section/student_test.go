package section

import (
	"testing"

	"job-admin-go/internal/storage/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapStudentUnknownSection(t *testing.T) {
	update, err := MapStudent("sid-1", "nope", map[string]any{})
	assert.Nil(t, update)
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func TestMapStudentAddressCopiesPermanentBlock(t *testing.T) {
	// isPermanentSameAsCurrent为true时permanent块必须与current块完全一致
	update, err := MapStudent("sid-1", "address", map[string]any{
		"isPermanentSameAsCurrent": true,
		"current": map[string]any{
			"addressLine": "12 MG Road",
			"city":        "Pune",
			"state":       "Maharashtra",
			"pincode":     "411001",
		},
		"permanent": map[string]any{
			"addressLine": "应被忽略",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "studentAddressData", update.CompletionKey)

	addr, ok := update.Satellite.(*models.StudentAddress)
	require.True(t, ok)
	assert.Equal(t, "sid-1", addr.StudentID)
	assert.Equal(t, addr.CurrentAddressLine, addr.PermanentAddressLine)
	assert.Equal(t, addr.CurrentCity, addr.PermanentCity)
	assert.Equal(t, addr.CurrentState, addr.PermanentState)
	assert.Equal(t, addr.CurrentPincode, addr.PermanentPincode)
}

func TestMapStudentAddressSeparateBlocks(t *testing.T) {
	update, err := MapStudent("sid-1", "address", map[string]any{
		"isPermanentSameAsCurrent": false,
		"current":                  map[string]any{"city": "Pune"},
		"permanent":                map[string]any{"city": "Nagpur"},
	})
	require.NoError(t, err)

	addr := update.Satellite.(*models.StudentAddress)
	assert.Equal(t, "Pune", addr.CurrentCity)
	assert.Equal(t, "Nagpur", addr.PermanentCity)
}

func TestMapStudentBasicDetailCoercion(t *testing.T) {
	update, err := MapStudent("sid-1", "basicDetail", map[string]any{
		"gender":    "female",
		"birthDate": "2000-01-15",
	})
	require.NoError(t, err)

	detail := update.Satellite.(*models.StudentBasicDetail)
	assert.Equal(t, "female", detail.Gender)
	assert.NotZero(t, detail.BirthDate)
	// 缺失文本字段收敛为空串
	assert.Equal(t, "", detail.Nationality)
}

func TestMapStudentWorkExperienceList(t *testing.T) {
	update, err := MapStudent("sid-1", "workExperience", map[string]any{
		"experiences": []any{
			map[string]any{"companyName": "Acme", "designation": "Clerk", "startDate": float64(1600000000)},
			map[string]any{"companyName": "Beta", "designation": "Typist"},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, update.Satellite)
	require.Len(t, update.Experiences, 2)
	assert.Equal(t, "Acme", update.Experiences[0].CompanyName)
	assert.Equal(t, int64(1600000000), update.Experiences[0].StartDate)
	assert.Equal(t, "sid-1", update.Experiences[1].StudentID)
}

func TestMapStudentWorkExperienceRequiresList(t *testing.T) {
	_, err := MapStudent("sid-1", "workExperience", map[string]any{"experiences": "oops"})
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestStudentCompletionKeysCoverAllSections(t *testing.T) {
	// 每个分段必须有对应的profileCompletion key，key集合固定为13个
	assert.Len(t, StudentSections, 13)
	for _, s := range StudentSections {
		key, ok := StudentCompletionKeys[s]
		assert.True(t, ok, "分段 %s 缺少completion key", s)
		assert.NotEmpty(t, key)
	}
}
