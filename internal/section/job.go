package section

import (
	"gorm.io/datatypes"
)

// JobSection 岗位分段的封闭枚举
type JobSection string

const (
	JobSectionBasicDetails   JobSection = "basicDetails"
	JobSectionDates          JobSection = "dates"
	JobSectionFees           JobSection = "fees"
	JobSectionVacancies      JobSection = "vacancies"
	JobSectionEligibility    JobSection = "eligibility"
	JobSectionSalary         JobSection = "salary"
	JobSectionPaymentOptions JobSection = "paymentOptions"
	JobSectionSelection      JobSection = "selection"
	JobSectionLinks          JobSection = "links"
	JobSectionHowToApply     JobSection = "howToApply"
	JobSectionMetaDetails    JobSection = "metaDetails"
)

// JobSections 岗位分段全集，顺序固定，完成度分母取其长度
var JobSections = []JobSection{
	JobSectionBasicDetails,
	JobSectionDates,
	JobSectionFees,
	JobSectionVacancies,
	JobSectionEligibility,
	JobSectionSalary,
	JobSectionPaymentOptions,
	JobSectionSelection,
	JobSectionLinks,
	JobSectionHowToApply,
	JobSectionMetaDetails,
}

// 字段类型
type fieldKind int

const (
	kindText fieldKind = iota
	kindNumber
	kindInt
	kindBool
)

// fieldSpec 声明式字段表条目：payload键 → 数据库列
type fieldSpec struct {
	Key    string
	Column string
	Kind   fieldKind
}

// 普通分段的字段表，Mapper与校验共用同一份声明
var jobFieldTables = map[JobSection][]fieldSpec{
	JobSectionBasicDetails: {
		{Key: "title", Column: "title", Kind: kindText},
		{Key: "shortDescription", Column: "short_description", Kind: kindText},
		{Key: "advtNo", Column: "advt_no", Kind: kindText},
		{Key: "organization", Column: "organization", Kind: kindText},
		{Key: "jobType", Column: "job_type", Kind: kindText},
		{Key: "sector", Column: "sector", Kind: kindText},
		{Key: "category", Column: "category", Kind: kindText},
		{Key: "subCategory", Column: "sub_category", Kind: kindText},
	},
	JobSectionVacancies: {
		{Key: "postName", Column: "post_name", Kind: kindText},
		{Key: "totalVacancies", Column: "total_vacancies", Kind: kindInt},
		{Key: "general", Column: "vacancy_general", Kind: kindInt},
		{Key: "obc", Column: "vacancy_obc", Kind: kindInt},
		{Key: "ews", Column: "vacancy_ews", Kind: kindInt},
		{Key: "sc", Column: "vacancy_sc", Kind: kindInt},
		{Key: "st", Column: "vacancy_st", Kind: kindInt},
		{Key: "ph", Column: "vacancy_ph", Kind: kindInt},
		{Key: "women", Column: "vacancy_women", Kind: kindInt},
		{Key: "other", Column: "vacancy_other", Kind: kindInt},
	},
	JobSectionEligibility: {
		{Key: "ageMin", Column: "age_min", Kind: kindInt},
		{Key: "ageMax", Column: "age_max", Kind: kindInt},
		{Key: "qualification", Column: "qualification", Kind: kindText},
		{Key: "experience", Column: "experience", Kind: kindText},
		{Key: "extraCriteria", Column: "extra_criteria", Kind: kindText},
	},
	JobSectionSalary: {
		{Key: "salaryMin", Column: "salary_min", Kind: kindInt},
		{Key: "salaryMax", Column: "salary_max", Kind: kindInt},
		{Key: "salaryInHand", Column: "salary_in_hand", Kind: kindInt},
		{Key: "allowance", Column: "allowance", Kind: kindText},
		{Key: "bondCondition", Column: "bond_condition", Kind: kindText},
	},
	JobSectionPaymentOptions: {
		{Key: "payOnline", Column: "pay_online", Kind: kindBool},
		{Key: "payOffline", Column: "pay_offline", Kind: kindBool},
		{Key: "payChallan", Column: "pay_challan", Kind: kindBool},
		{Key: "payDebitCard", Column: "pay_debit_card", Kind: kindBool},
		{Key: "payNetBanking", Column: "pay_net_banking", Kind: kindBool},
		{Key: "payUPI", Column: "pay_upi", Kind: kindBool},
	},
	JobSectionHowToApply: {
		{Key: "howToApply", Column: "how_to_apply", Kind: kindText},
	},
	JobSectionMetaDetails: {
		{Key: "metaTitle", Column: "meta_title", Kind: kindText},
		{Key: "metaDescription", Column: "meta_description", Kind: kindText},
		{Key: "metaKeywords", Column: "meta_keywords", Kind: kindText},
		{Key: "metaSchema", Column: "meta_schema", Kind: kindText},
	},
}

// dates分段的标签查找表：前端给的是{label,date}列表，表外标签静默丢弃
var jobDateColumns = map[string]string{
	"applicationStartDate":     "application_start_date",
	"applicationEndDate":       "application_end_date",
	"feePaymentLastDate":       "fee_payment_last_date",
	"examDate":                 "exam_date",
	"admitCardDate":            "admit_card_date",
	"answerKeyDate":            "answer_key_date",
	"resultDate":               "result_date",
	"interviewDate":            "interview_date",
	"documentVerificationDate": "document_verification_date",
	"medicalExamDate":          "medical_exam_date",
	"joiningDate":              "joining_date",
	"reOpenStartDate":          "re_open_start_date",
	"reOpenEndDate":            "re_open_end_date",
	"correctionStartDate":      "correction_start_date",
	"correctionEndDate":        "correction_end_date",
	"reExamDate":               "re_exam_date",
	"counsellingDate":          "counselling_date",
}

// fees分段按报考类别更新单列
var jobFeeColumns = map[string]string{
	"General": "fee_general",
	"OBC":     "fee_obc",
	"EWS":     "fee_ews",
	"SC/ST":   "fee_scst",
	"SCST":    "fee_scst",
	"PH":      "fee_ph",
	"Women":   "fee_women",
	"Other":   "fee_other",
}

// MapJob 把(分段名, 原始payload)转换为规范化的列更新集合。
// 纯函数，不做任何I/O；last_updated由Entity Store在持久化时统一盖章
func MapJob(name string, payload map[string]any) (map[string]any, error) {
	switch JobSection(name) {
	case JobSectionBasicDetails, JobSectionEligibility, JobSectionSalary,
		JobSectionPaymentOptions, JobSectionHowToApply, JobSectionMetaDetails:
		return applyFieldTable(jobFieldTables[JobSection(name)], payload), nil

	case JobSectionVacancies:
		// 空岗位行守卫：岗位名必填且总数非零，拒绝落库空行
		if Str(payload["postName"]) == "" {
			return nil, NewInvalidPayloadError(name, "postName不能为空")
		}
		if Int(payload["totalVacancies"]) == 0 {
			return nil, NewInvalidPayloadError(name, "totalVacancies不能为0")
		}
		return applyFieldTable(jobFieldTables[JobSectionVacancies], payload), nil

	case JobSectionDates:
		return mapJobDates(payload)

	case JobSectionFees:
		return mapJobFees(payload)

	case JobSectionSelection:
		steps := StrSlice(payload["steps"])
		raw, err := marshalSlice(steps)
		if err != nil {
			return nil, NewInvalidPayloadError(name, err.Error())
		}
		return map[string]any{"selection_steps": raw}, nil

	case JobSectionLinks:
		return mapJobLinks(payload)

	default:
		return nil, NewUnknownSectionError(name)
	}
}

// applyFieldTable 按字段表对payload收敛类型，缺失字段写入对应零值
func applyFieldTable(table []fieldSpec, payload map[string]any) map[string]any {
	updates := make(map[string]any, len(table))
	for _, f := range table {
		switch f.Kind {
		case kindText:
			updates[f.Column] = Str(payload[f.Key])
		case kindNumber:
			updates[f.Column] = Num(payload[f.Key])
		case kindInt:
			updates[f.Column] = Int(payload[f.Key])
		case kindBool:
			updates[f.Column] = Boolean(payload[f.Key])
		}
	}
	return updates
}

func mapJobDates(payload map[string]any) (map[string]any, error) {
	entries, ok := payload["dates"].([]any)
	if !ok {
		return nil, NewInvalidPayloadError(string(JobSectionDates), "dates必须是{label,date}列表")
	}
	updates := make(map[string]any, len(entries))
	for _, e := range entries {
		entry, ok := e.(map[string]any)
		if !ok {
			continue
		}
		column, known := jobDateColumns[Str(entry["label"])]
		if !known {
			continue // 表外标签静默丢弃
		}
		updates[column] = UnixTime(entry["date"])
	}
	return updates, nil
}

func mapJobFees(payload map[string]any) (map[string]any, error) {
	column, known := jobFeeColumns[Str(payload["category"])]
	if !known {
		return nil, NewInvalidPayloadError(string(JobSectionFees), "未知的报考类别: "+Str(payload["category"]))
	}
	return map[string]any{column: Num(payload["fee"])}, nil
}

// links分段：{type,label,url}列表折叠为label→URL映射。
// 重复label后写覆盖前写；type只是前端展示提示，不落库
func mapJobLinks(payload map[string]any) (map[string]any, error) {
	entries, ok := payload["links"].([]any)
	if !ok {
		return nil, NewInvalidPayloadError(string(JobSectionLinks), "links必须是{type,label,url}列表")
	}
	collapsed := datatypes.JSONMap{}
	for _, e := range entries {
		entry, ok := e.(map[string]any)
		if !ok {
			continue
		}
		label := Str(entry["label"])
		if label == "" {
			continue
		}
		collapsed[label] = Str(entry["url"])
	}
	return map[string]any{"links": collapsed}, nil
}
