package dto

// ── 课程/选课/成绩模块 DTO ──

// CreateCourseRequest 创建课程请求
type CreateCourseRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// CourseResponse 课程信息响应
type CourseResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ProfessorID string `json:"professor_id"`
}

// RosterEntry 课程名册中的一行：已选课学生及其成绩
// 未录入成绩时 Grade 为 null，而非缺行
type RosterEntry struct {
	StudentID    string   `json:"student_id"`
	Username     string   `json:"username"`
	Grade        *float64 `json:"grade"`
	EnrollmentID string   `json:"enrollment_id"`
}

// CandidateEntry 可选学生下拉项（role=student 且未选该课程）
type CandidateEntry struct {
	StudentID string `json:"student_id"`
	Username  string `json:"username"`
}

// CourseDetailResponse 课程详情：课程 + 名册 + 可选学生
type CourseDetailResponse struct {
	Course     CourseResponse   `json:"course"`
	Students   []RosterEntry    `json:"students"`
	Candidates []CandidateEntry `json:"candidates"`
}

// SubmitCourseDetailRequest 课程详情页双模式提交
// 两种模式互斥：
//   - 选课模式：student_id 必填，grade 可选（选课后顺带录成绩）
//   - 改成绩模式：enrollment_id 与 value 必填，直接更新已有选课的成绩
type SubmitCourseDetailRequest struct {
	StudentID    string   `json:"student_id"    binding:"omitempty,uuid"`
	Grade        *float64 `json:"grade"         binding:"omitempty"`
	EnrollmentID string   `json:"enrollment_id" binding:"omitempty,uuid"`
	Value        *float64 `json:"value"         binding:"omitempty"`
}

// StudentEnrollmentResponse 学生视角的一条选课记录
type StudentEnrollmentResponse struct {
	CourseName        string   `json:"course_name"`
	ProfessorUsername string   `json:"professor_username"`
	Grade             *float64 `json:"grade"`
}

// AdminCourseStudent 管理端报表中课程下的一名学生
type AdminCourseStudent struct {
	StudentName string   `json:"student_name"`
	Grade       *float64 `json:"grade"`
}

// AdminCourseGroup 管理端报表中的一门课程及其学生
// 零选课的课程也出现，Students 为空列表
type AdminCourseGroup struct {
	CourseID      string               `json:"course_id"`
	CourseName    string               `json:"course_name"`
	ProfessorName string               `json:"professor_name"`
	Students      []AdminCourseStudent `json:"students"`
}
