package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// JobPosting 岗位聚合根表
// 分段字段按section分组排列，部分更新时只有被映射到的列会变化
type JobPosting struct {
	JobID string `gorm:"type:char(36);primaryKey" json:"job_id"`

	// 创建时必填字段
	Title            string `gorm:"type:varchar(255);not null" json:"title"`
	ShortDescription string `gorm:"type:text" json:"short_description"`
	AdvtNo           string `gorm:"type:varchar(100);not null" json:"advt_no"`
	Organization     string `gorm:"type:varchar(255);not null" json:"organization"`
	JobType          string `gorm:"type:varchar(50);not null" json:"job_type"`
	Sector           string `gorm:"type:varchar(50);not null" json:"sector"`
	Category         string `gorm:"type:varchar(100);not null" json:"category"`
	SubCategory      string `gorm:"type:varchar(100);not null" json:"sub_category"`

	// 服务端默认值
	Status             int   `gorm:"default:0;index:idx_job_postings_status" json:"status"`
	PostedDate         int64 `gorm:"not null" json:"posted_date"`                             // unix秒
	JobLastUpdatedDate int64 `gorm:"not null;index:idx_job_postings_updated" json:"job_last_updated_date"` // 任何变更都会更新

	// 分段完成标记，key为section名，值为0/1
	SectionCompletion datatypes.JSONMap `gorm:"type:json" json:"section_completion"`

	// dates 段：17个unix时间戳字段，由标签查找表填充
	ApplicationStartDate     int64 `json:"application_start_date"`
	ApplicationEndDate       int64 `json:"application_end_date"`
	FeePaymentLastDate       int64 `json:"fee_payment_last_date"`
	ExamDate                 int64 `json:"exam_date"`
	AdmitCardDate            int64 `json:"admit_card_date"`
	AnswerKeyDate            int64 `json:"answer_key_date"`
	ResultDate               int64 `json:"result_date"`
	InterviewDate            int64 `json:"interview_date"`
	DocumentVerificationDate int64 `json:"document_verification_date"`
	MedicalExamDate          int64 `json:"medical_exam_date"`
	JoiningDate              int64 `json:"joining_date"`
	ReOpenStartDate          int64 `json:"re_open_start_date"`
	ReOpenEndDate            int64 `json:"re_open_end_date"`
	CorrectionStartDate      int64 `json:"correction_start_date"`
	CorrectionEndDate        int64 `json:"correction_end_date"`
	ReExamDate               int64 `json:"re_exam_date"`
	CounsellingDate          int64 `json:"counselling_date"`

	// fees 段：按报考类别区分的报名费
	FeeGeneral float64 `json:"fee_general"`
	FeeOBC     float64 `json:"fee_obc"`
	FeeEWS     float64 `json:"fee_ews"`
	FeeSCST    float64 `json:"fee_scst"`
	FeePH      float64 `json:"fee_ph"`
	FeeWomen   float64 `json:"fee_women"`
	FeeOther   float64 `json:"fee_other"`

	// vacancies 段：岗位名 + 总数 + 8个配额
	PostName        string `gorm:"type:varchar(255)" json:"post_name"`
	TotalVacancies  int    `json:"total_vacancies"`
	VacancyGeneral  int    `json:"vacancy_general"`
	VacancyOBC      int    `json:"vacancy_obc"`
	VacancyEWS      int    `json:"vacancy_ews"`
	VacancySC       int    `json:"vacancy_sc"`
	VacancyST       int    `json:"vacancy_st"`
	VacancyPH       int    `json:"vacancy_ph"`
	VacancyWomen    int    `json:"vacancy_women"`
	VacancyOther    int    `json:"vacancy_other"`

	// eligibility 段
	AgeMin        int    `json:"age_min"`
	AgeMax        int    `json:"age_max"`
	Qualification string `gorm:"type:text" json:"qualification"`
	Experience    string `gorm:"type:text" json:"experience"`
	ExtraCriteria string `gorm:"type:text" json:"extra_criteria"`

	// salary 段
	SalaryMin     int    `json:"salary_min"`
	SalaryMax     int    `json:"salary_max"`
	SalaryInHand  int    `json:"salary_in_hand"`
	Allowance     string `gorm:"type:text" json:"allowance"`
	BondCondition string `gorm:"type:text" json:"bond_condition"`

	// paymentOptions 段
	PayOnline     bool `json:"pay_online"`
	PayOffline    bool `json:"pay_offline"`
	PayChallan    bool `json:"pay_challan"`
	PayDebitCard  bool `json:"pay_debit_card"`
	PayNetBanking bool `json:"pay_net_banking"`
	PayUPI        bool `json:"pay_upi"`

	// selection 段：有序的选拔流程步骤列表 ([]string)
	SelectionSteps datatypes.JSON `gorm:"type:json" json:"selection_steps"`

	// links 段：label→URL 映射，type字段在此流程中不落库
	Links datatypes.JSONMap `gorm:"type:json" json:"links"`

	// howToApply 段
	HowToApply string `gorm:"type:text" json:"how_to_apply"`

	// 文件上传：公开路径字符串列表与logo路径
	Files datatypes.JSON `gorm:"type:json" json:"files"`
	Logo  string         `gorm:"type:varchar(1024)" json:"logo"`

	// metaDetails 段：SEO信息
	MetaTitle       string `gorm:"type:varchar(255)" json:"meta_title"`
	MetaDescription string `gorm:"type:text" json:"meta_description"`
	MetaKeywords    string `gorm:"type:text" json:"meta_keywords"`
	MetaSchema      string `gorm:"type:text" json:"meta_schema"`
}

func (JobPosting) TableName() string {
	return "job_postings"
}

// Student 学员聚合根表
type Student struct {
	StudentID string `gorm:"type:char(36);primaryKey" json:"student_id"`

	// 创建时必填字段
	FirstName    string `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName     string `gorm:"type:varchar(100)" json:"last_name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex:idx_students_email_unique" json:"email"`
	Mobile       string `gorm:"type:varchar(20);not null;uniqueIndex:idx_students_mobile_unique" json:"mobile"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	JobTypeRef   string `gorm:"type:varchar(50);not null" json:"job_type_ref"`

	// 推荐码：创建时生成，全局唯一；被推荐时冗余存储推荐人的id和码
	ReferralCode   string  `gorm:"type:varchar(16);not null;uniqueIndex:idx_students_referral_unique" json:"referral_code"`
	ReferredByID   *string `gorm:"type:char(36)" json:"referred_by_id,omitempty"`
	ReferredByCode string  `gorm:"type:varchar(16)" json:"referred_by_code,omitempty"`

	// 完成度追踪器的持久化状态：sectionKey→0/1，key集合固定
	ProfileCompletion datatypes.JSONMap `gorm:"type:json" json:"profile_completion"`

	Status      int   `gorm:"default:0" json:"status"`
	CreatedDate int64 `gorm:"not null" json:"created_date"` // unix秒
	LastUpdated int64 `gorm:"not null" json:"last_updated"` // 任何变更都会更新
}

func (Student) TableName() string {
	return "students"
}

// StudentAddress 学员地址卫星表 (1:1)
type StudentAddress struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID string `gorm:"type:char(36);not null;uniqueIndex:idx_student_addresses_student_unique" json:"student_id"`

	CurrentAddressLine string `gorm:"type:varchar(500)" json:"current_address_line"`
	CurrentCity        string `gorm:"type:varchar(100)" json:"current_city"`
	CurrentState       string `gorm:"type:varchar(100)" json:"current_state"`
	CurrentPincode     string `gorm:"type:varchar(10)" json:"current_pincode"`

	PermanentAddressLine string `gorm:"type:varchar(500)" json:"permanent_address_line"`
	PermanentCity        string `gorm:"type:varchar(100)" json:"permanent_city"`
	PermanentState       string `gorm:"type:varchar(100)" json:"permanent_state"`
	PermanentPincode     string `gorm:"type:varchar(10)" json:"permanent_pincode"`

	// 为true时permanent块与current块完全一致
	IsPermanentSameAsCurrent bool `json:"is_permanent_same_as_current"`
}

func (StudentAddress) TableName() string {
	return "student_addresses"
}

// StudentBasicDetail 学员基本信息卫星表 (1:1)
type StudentBasicDetail struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID string `gorm:"type:char(36);not null;uniqueIndex:idx_student_basic_details_student_unique" json:"student_id"`

	Gender        string `gorm:"type:varchar(10)" json:"gender"`
	BirthDate     int64  `json:"birth_date"` // unix秒
	Category      string `gorm:"type:varchar(50)" json:"category"`
	MaritalStatus string `gorm:"type:varchar(20)" json:"marital_status"`
	Nationality   string `gorm:"type:varchar(50)" json:"nationality"`
}

func (StudentBasicDetail) TableName() string {
	return "student_basic_details"
}

// StudentBankInfo 学员银行信息卫星表 (1:1)
type StudentBankInfo struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID string `gorm:"type:char(36);not null;uniqueIndex:idx_student_bank_infos_student_unique" json:"student_id"`

	BankName          string `gorm:"type:varchar(255)" json:"bank_name"`
	BranchName        string `gorm:"type:varchar(255)" json:"branch_name"`
	AccountNumber     string `gorm:"type:varchar(50)" json:"account_number"`
	IFSCCode          string `gorm:"type:varchar(20)" json:"ifsc_code"`
	AccountHolderName string `gorm:"type:varchar(255)" json:"account_holder_name"`
}

func (StudentBankInfo) TableName() string {
	return "student_bank_infos"
}

// StudentBodyDetail 学员体检信息卫星表 (1:1)
type StudentBodyDetail struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID string `gorm:"type:char(36);not null;uniqueIndex:idx_student_body_details_student_unique" json:"student_id"`

	HeightCM           float64 `json:"height_cm"`
	WeightKG           float64 `json:"weight_kg"`
	ChestCM            float64 `json:"chest_cm"`
	EyeSight           string  `gorm:"type:varchar(50)" json:"eye_sight"`
	IdentificationMark string  `gorm:"type:varchar(255)" json:"identification_mark"`
}

func (StudentBodyDetail) TableName() string {
	return "student_body_details"
}

// StudentCareerPreferences 学员求职偏好卫星表 (1:1)
type StudentCareerPreferences struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID string `gorm:"type:char(36);not null;uniqueIndex:idx_student_career_prefs_student_unique" json:"student_id"`

	PreferredSectors   datatypes.JSON `gorm:"type:json" json:"preferred_sectors"`   // []string
	PreferredLocations datatypes.JSON `gorm:"type:json" json:"preferred_locations"` // []string
	ExpectedSalaryMin  int            `json:"expected_salary_min"`
	ExpectedSalaryMax  int            `json:"expected_salary_max"`
	WillingToRelocate  bool           `json:"willing_to_relocate"`
}

func (StudentCareerPreferences) TableName() string {
	return "student_career_preferences"
}

// StudentDocumentUpload 学员证件上传卫星表 (1:1)，只存公开路径字符串
type StudentDocumentUpload struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID string `gorm:"type:char(36);not null;uniqueIndex:idx_student_doc_uploads_student_unique" json:"student_id"`

	PhotoPath     string `gorm:"type:varchar(1024)" json:"photo_path"`
	SignaturePath string `gorm:"type:varchar(1024)" json:"signature_path"`
	IDProofPath   string `gorm:"type:varchar(1024)" json:"id_proof_path"`
	ResumePath    string `gorm:"type:varchar(1024)" json:"resume_path"`
}

func (StudentDocumentUpload) TableName() string {
	return "student_document_uploads"
}

// StudentEducation 学员教育信息卫星表 (1:1)
type StudentEducation struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID string `gorm:"type:char(36);not null;uniqueIndex:idx_student_educations_student_unique" json:"student_id"`

	HighestQualification string  `gorm:"type:varchar(100)" json:"highest_qualification"`
	Degree               string  `gorm:"type:varchar(100)" json:"degree"`
	Institution          string  `gorm:"type:varchar(255)" json:"institution"`
	PassingYear          int     `json:"passing_year"`
	MarksPercent         float64 `json:"marks_percent"`
}

func (StudentEducation) TableName() string {
	return "student_educations"
}

// StudentEmergencyContact 学员紧急联系人卫星表 (1:1)
type StudentEmergencyContact struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID string `gorm:"type:char(36);not null;uniqueIndex:idx_student_emg_contacts_student_unique" json:"student_id"`

	ContactName    string `gorm:"type:varchar(255)" json:"contact_name"`
	Relation       string `gorm:"type:varchar(50)" json:"relation"`
	ContactMobile  string `gorm:"type:varchar(20)" json:"contact_mobile"`
	ContactAddress string `gorm:"type:varchar(500)" json:"contact_address"`
}

func (StudentEmergencyContact) TableName() string {
	return "student_emergency_contacts"
}

// StudentParentalInfo 学员家庭信息卫星表 (1:1)
type StudentParentalInfo struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID string `gorm:"type:char(36);not null;uniqueIndex:idx_student_parental_infos_student_unique" json:"student_id"`

	FatherName       string `gorm:"type:varchar(255)" json:"father_name"`
	FatherOccupation string `gorm:"type:varchar(255)" json:"father_occupation"`
	MotherName       string `gorm:"type:varchar(255)" json:"mother_name"`
	MotherOccupation string `gorm:"type:varchar(255)" json:"mother_occupation"`
	GuardianMobile   string `gorm:"type:varchar(20)" json:"guardian_mobile"`
}

func (StudentParentalInfo) TableName() string {
	return "student_parental_infos"
}

// StudentSkills 学员技能卫星表 (1:1)
type StudentSkills struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID string `gorm:"type:char(36);not null;uniqueIndex:idx_student_skills_student_unique" json:"student_id"`

	Skills         datatypes.JSON `gorm:"type:json" json:"skills"`    // []string
	Languages      datatypes.JSON `gorm:"type:json" json:"languages"` // []string
	ComputerSkills string         `gorm:"type:text" json:"computer_skills"`
}

func (StudentSkills) TableName() string {
	return "student_skills"
}

// StudentSocialLinks 学员社交链接卫星表 (1:1)
type StudentSocialLinks struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID string `gorm:"type:char(36);not null;uniqueIndex:idx_student_social_links_student_unique" json:"student_id"`

	LinkedinURL string `gorm:"type:varchar(500)" json:"linkedin_url"`
	GithubURL   string `gorm:"type:varchar(500)" json:"github_url"`
	TwitterURL  string `gorm:"type:varchar(500)" json:"twitter_url"`
	WebsiteURL  string `gorm:"type:varchar(500)" json:"website_url"`
}

func (StudentSocialLinks) TableName() string {
	return "student_social_links"
}

// StudentWorkExperience 学员工作经历表 (1:many)
type StudentWorkExperience struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID string `gorm:"type:char(36);not null;index:idx_student_work_exps_student" json:"student_id"`

	CompanyName string `gorm:"type:varchar(255)" json:"company_name"`
	Designation string `gorm:"type:varchar(255)" json:"designation"`
	StartDate   int64  `json:"start_date"`
	EndDate     int64  `json:"end_date"`
	Description string `gorm:"type:text" json:"description"`
}

func (StudentWorkExperience) TableName() string {
	return "student_work_experiences"
}

// StudentCertification 学员证书表 (1:many)
type StudentCertification struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID string `gorm:"type:char(36);not null;index:idx_student_certifications_student" json:"student_id"`

	CertificateName string `gorm:"type:varchar(255)" json:"certificate_name"`
	IssuedBy        string `gorm:"type:varchar(255)" json:"issued_by"`
	IssueDate       int64  `json:"issue_date"`
	CertificatePath string `gorm:"type:varchar(1024)" json:"certificate_path"`
}

func (StudentCertification) TableName() string {
	return "student_certifications"
}

// JobCategory 岗位类别字典表，名称大小写敏感且唯一
type JobCategory struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(100);not null;uniqueIndex:idx_job_categories_name_unique" json:"name"`
}

func (JobCategory) TableName() string {
	return "job_categories"
}

// JobSubCategory 岗位子类别字典表
type JobSubCategory struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"type:varchar(100);not null;uniqueIndex:idx_job_sub_categories_name_unique" json:"name"`
	CategoryName string `gorm:"type:varchar(100);not null;index:idx_job_sub_categories_category" json:"category_name"`
}

func (JobSubCategory) TableName() string {
	return "job_sub_categories"
}

// JobSectorRecord 部门类别字典表
type JobSectorRecord struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(100);not null;uniqueIndex:idx_job_sectors_name_unique" json:"name"`
}

func (JobSectorRecord) TableName() string {
	return "job_sectors"
}

// JobTypeRecord 岗位类型字典表
type JobTypeRecord struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(100);not null;uniqueIndex:idx_job_types_name_unique" json:"name"`
}

func (JobTypeRecord) TableName() string {
	return "job_types"
}

// StringSliceToJSON 将字符串切片序列化为datatypes.JSON
func StringSliceToJSON(s []string) (datatypes.JSON, error) {
	bytes, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return bytes, nil
}

// JSONToStringSlice 将datatypes.JSON反序列化为字符串切片，空值返回空切片
func JSONToStringSlice(j datatypes.JSON) ([]string, error) {
	if len(j) == 0 {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal(j, &out); err != nil {
		return nil, err
	}
	return out, nil
}
