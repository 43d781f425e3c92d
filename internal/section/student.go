package section

import (
	"job-admin-go/internal/storage/models"
)

// StudentSection 学员分段的封闭枚举，每个1:1分段对应一张卫星表
type StudentSection string

const (
	StudentSectionAddress           StudentSection = "address"
	StudentSectionBasicDetail       StudentSection = "basicDetail"
	StudentSectionBankInfo          StudentSection = "bankInfo"
	StudentSectionBodyDetail        StudentSection = "bodyDetail"
	StudentSectionCareerPreferences StudentSection = "careerPreferences"
	StudentSectionDocumentUpload    StudentSection = "documentUpload"
	StudentSectionEducation         StudentSection = "education"
	StudentSectionEmergencyContact  StudentSection = "emergencyContact"
	StudentSectionParentalInfo      StudentSection = "parentalInfo"
	StudentSectionSkills            StudentSection = "skills"
	StudentSectionSocialLinks       StudentSection = "socialLinks"
	StudentSectionWorkExperience    StudentSection = "workExperience"
	StudentSectionCertifications    StudentSection = "certifications"
)

// StudentSections 学员分段全集，完成度分母取其长度
var StudentSections = []StudentSection{
	StudentSectionAddress,
	StudentSectionBasicDetail,
	StudentSectionBankInfo,
	StudentSectionBodyDetail,
	StudentSectionCareerPreferences,
	StudentSectionDocumentUpload,
	StudentSectionEducation,
	StudentSectionEmergencyContact,
	StudentSectionParentalInfo,
	StudentSectionSkills,
	StudentSectionSocialLinks,
	StudentSectionWorkExperience,
	StudentSectionCertifications,
}

// StudentCompletionKeys 分段名 → profileCompletion中的持久化key
var StudentCompletionKeys = map[StudentSection]string{
	StudentSectionAddress:           "studentAddressData",
	StudentSectionBasicDetail:       "studentBasicDetailsData",
	StudentSectionBankInfo:          "studentBankInfoData",
	StudentSectionBodyDetail:        "studentBodyDetailsData",
	StudentSectionCareerPreferences: "studentCareerPreferencesData",
	StudentSectionDocumentUpload:    "studentDocumentUploadData",
	StudentSectionEducation:         "studentEducationData",
	StudentSectionEmergencyContact:  "studentEmergencyContactData",
	StudentSectionParentalInfo:      "studentParentalInfoData",
	StudentSectionSkills:            "studentSkillsData",
	StudentSectionSocialLinks:       "studentSocialLinksData",
	StudentSectionWorkExperience:    "studentWorkExperienceData",
	StudentSectionCertifications:    "studentCertificationsData",
}

// StudentUpdate 学员分段映射结果：1:1分段填Satellite，1:many分段填对应列表
type StudentUpdate struct {
	StudentID     string
	Section       StudentSection
	CompletionKey string
	Satellite     any // 卫星表模型指针，按student_id做upsert
	Experiences   []models.StudentWorkExperience
	Certificates  []models.StudentCertification
}

// MapStudent 把(分段名, 原始payload)转换为待upsert的卫星记录。
// 纯函数，不做任何I/O；存在性检查与事务由Entity Store负责
func MapStudent(studentID, name string, payload map[string]any) (*StudentUpdate, error) {
	kind := StudentSection(name)
	result := &StudentUpdate{StudentID: studentID, Section: kind, CompletionKey: StudentCompletionKeys[kind]}

	switch kind {
	case StudentSectionAddress:
		result.Satellite = mapStudentAddress(studentID, payload)

	case StudentSectionBasicDetail:
		result.Satellite = &models.StudentBasicDetail{
			StudentID:     studentID,
			Gender:        Str(payload["gender"]),
			BirthDate:     UnixTime(payload["birthDate"]),
			Category:      Str(payload["category"]),
			MaritalStatus: Str(payload["maritalStatus"]),
			Nationality:   Str(payload["nationality"]),
		}

	case StudentSectionBankInfo:
		result.Satellite = &models.StudentBankInfo{
			StudentID:         studentID,
			BankName:          Str(payload["bankName"]),
			BranchName:        Str(payload["branchName"]),
			AccountNumber:     Str(payload["accountNumber"]),
			IFSCCode:          Str(payload["ifscCode"]),
			AccountHolderName: Str(payload["accountHolderName"]),
		}

	case StudentSectionBodyDetail:
		result.Satellite = &models.StudentBodyDetail{
			StudentID:          studentID,
			HeightCM:           Num(payload["heightCm"]),
			WeightKG:           Num(payload["weightKg"]),
			ChestCM:            Num(payload["chestCm"]),
			EyeSight:           Str(payload["eyeSight"]),
			IdentificationMark: Str(payload["identificationMark"]),
		}

	case StudentSectionCareerPreferences:
		sectors, err := marshalSlice(StrSlice(payload["preferredSectors"]))
		if err != nil {
			return nil, NewInvalidPayloadError(name, err.Error())
		}
		locations, err := marshalSlice(StrSlice(payload["preferredLocations"]))
		if err != nil {
			return nil, NewInvalidPayloadError(name, err.Error())
		}
		result.Satellite = &models.StudentCareerPreferences{
			StudentID:          studentID,
			PreferredSectors:   sectors,
			PreferredLocations: locations,
			ExpectedSalaryMin:  Int(payload["expectedSalaryMin"]),
			ExpectedSalaryMax:  Int(payload["expectedSalaryMax"]),
			WillingToRelocate:  Boolean(payload["willingToRelocate"]),
		}

	case StudentSectionDocumentUpload:
		result.Satellite = &models.StudentDocumentUpload{
			StudentID:     studentID,
			PhotoPath:     Str(payload["photoPath"]),
			SignaturePath: Str(payload["signaturePath"]),
			IDProofPath:   Str(payload["idProofPath"]),
			ResumePath:    Str(payload["resumePath"]),
		}

	case StudentSectionEducation:
		result.Satellite = &models.StudentEducation{
			StudentID:            studentID,
			HighestQualification: Str(payload["highestQualification"]),
			Degree:               Str(payload["degree"]),
			Institution:          Str(payload["institution"]),
			PassingYear:          Int(payload["passingYear"]),
			MarksPercent:         Num(payload["marksPercent"]),
		}

	case StudentSectionEmergencyContact:
		result.Satellite = &models.StudentEmergencyContact{
			StudentID:      studentID,
			ContactName:    Str(payload["contactName"]),
			Relation:       Str(payload["relation"]),
			ContactMobile:  Str(payload["contactMobile"]),
			ContactAddress: Str(payload["contactAddress"]),
		}

	case StudentSectionParentalInfo:
		result.Satellite = &models.StudentParentalInfo{
			StudentID:        studentID,
			FatherName:       Str(payload["fatherName"]),
			FatherOccupation: Str(payload["fatherOccupation"]),
			MotherName:       Str(payload["motherName"]),
			MotherOccupation: Str(payload["motherOccupation"]),
			GuardianMobile:   Str(payload["guardianMobile"]),
		}

	case StudentSectionSkills:
		skills, err := marshalSlice(StrSlice(payload["skills"]))
		if err != nil {
			return nil, NewInvalidPayloadError(name, err.Error())
		}
		languages, err := marshalSlice(StrSlice(payload["languages"]))
		if err != nil {
			return nil, NewInvalidPayloadError(name, err.Error())
		}
		result.Satellite = &models.StudentSkills{
			StudentID:      studentID,
			Skills:         skills,
			Languages:      languages,
			ComputerSkills: Str(payload["computerSkills"]),
		}

	case StudentSectionSocialLinks:
		result.Satellite = &models.StudentSocialLinks{
			StudentID:   studentID,
			LinkedinURL: Str(payload["linkedinUrl"]),
			GithubURL:   Str(payload["githubUrl"]),
			TwitterURL:  Str(payload["twitterUrl"]),
			WebsiteURL:  Str(payload["websiteUrl"]),
		}

	case StudentSectionWorkExperience:
		entries, ok := payload["experiences"].([]any)
		if !ok {
			return nil, NewInvalidPayloadError(name, "experiences必须是列表")
		}
		for _, e := range entries {
			entry, ok := e.(map[string]any)
			if !ok {
				continue
			}
			result.Experiences = append(result.Experiences, models.StudentWorkExperience{
				StudentID:   studentID,
				CompanyName: Str(entry["companyName"]),
				Designation: Str(entry["designation"]),
				StartDate:   UnixTime(entry["startDate"]),
				EndDate:     UnixTime(entry["endDate"]),
				Description: Str(entry["description"]),
			})
		}

	case StudentSectionCertifications:
		entries, ok := payload["certificates"].([]any)
		if !ok {
			return nil, NewInvalidPayloadError(name, "certificates必须是列表")
		}
		for _, e := range entries {
			entry, ok := e.(map[string]any)
			if !ok {
				continue
			}
			result.Certificates = append(result.Certificates, models.StudentCertification{
				StudentID:       studentID,
				CertificateName: Str(entry["certificateName"]),
				IssuedBy:        Str(entry["issuedBy"]),
				IssueDate:       UnixTime(entry["issueDate"]),
				CertificatePath: Str(entry["certificatePath"]),
			})
		}

	default:
		return nil, NewUnknownSectionError(name)
	}

	return result, nil
}

// address分段：isPermanentSameAsCurrent为true时permanent块整体复制current块
func mapStudentAddress(studentID string, payload map[string]any) *models.StudentAddress {
	current, _ := payload["current"].(map[string]any)
	permanent, _ := payload["permanent"].(map[string]any)

	addr := &models.StudentAddress{
		StudentID:                studentID,
		CurrentAddressLine:       Str(current["addressLine"]),
		CurrentCity:              Str(current["city"]),
		CurrentState:             Str(current["state"]),
		CurrentPincode:           Str(current["pincode"]),
		IsPermanentSameAsCurrent: Boolean(payload["isPermanentSameAsCurrent"]),
	}

	if addr.IsPermanentSameAsCurrent {
		addr.PermanentAddressLine = addr.CurrentAddressLine
		addr.PermanentCity = addr.CurrentCity
		addr.PermanentState = addr.CurrentState
		addr.PermanentPincode = addr.CurrentPincode
	} else {
		addr.PermanentAddressLine = Str(permanent["addressLine"])
		addr.PermanentCity = Str(permanent["city"])
		addr.PermanentState = Str(permanent["state"])
		addr.PermanentPincode = Str(permanent["pincode"])
	}
	return addr
}
