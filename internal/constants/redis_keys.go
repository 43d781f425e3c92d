package constants

// Redis Key 前缀和格式常量
// 使用统一的命名规范: app:{module}:{entity}:{unique_id}
const (
	// AppPrefix 是所有Redis Key的统一应用前缀
	AppPrefix = "app"

	// StudentModulePrefix 学员模块
	StudentModulePrefix = "student"
	// EntityModulePrefix 聚合实体模块
	EntityModulePrefix = "entity"

	// EntityReferral 推荐码预留实体
	EntityReferral = "referral"
	// EntityLock 分布式锁实体
	EntityLock = "lock"

	// KeyReferralReserve 推荐码预留 (STRING, SETNX)
	// 格式: app:student:referral:{code}
	KeyReferralReserve = AppPrefix + ":" + StudentModulePrefix + ":" + EntityReferral + ":%s"

	// KeySectionSaveLock 分段保存建议锁 (STRING)
	// 格式: app:entity:lock:{entityKind}:{entityID}:{section}
	KeySectionSaveLock = AppPrefix + ":" + EntityModulePrefix + ":" + EntityLock + ":%s:%s:%s"
)
