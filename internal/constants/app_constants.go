package constants

// 实体类型，用于上传路径、outbox聚合类型等
const (
	EntityKindJob     = "jobs"
	EntityKindStudent = "students"
)

// 岗位类型枚举（创建岗位时校验）
var JobTypes = []string{
	"Permanent",
	"Contract",
	"Apprentice",
	"Full-time",
	"Part-time",
	"Internship",
}

// 岗位部门类别枚举
var JobSectors = []string{
	"Central Govt",
	"State Govt",
	"PSU",
	"Public",
	"Private",
	"NGO",
}

// 岗位状态
const (
	JobStatusActive = 0
	JobStatusClosed = 1
)

// outbox事件类型
const (
	EventSectionSaved   = "entity.section.saved"
	EventStudentCreated = "student.created"
)

// 学员推荐码：固定前缀 + 6位[A-Z0-9]随机字符
const (
	ReferralCodePrefix = "JP"
	ReferralCodeLength = 6
)
