package service

import (
	"context"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"gestion-cours/backend/internal/model"
)

// 造一个典型报表场景：
//   - Algèbre（prof_dupont）：alice 15 分、bob 未录入
//   - Chimie（prof_martin）：零选课
func reportFixture(t *testing.T) *mockStore {
	t.Helper()
	st := newMockStore()
	dupont := st.addUser("prof_dupont", model.RoleProfessor)
	martin := st.addUser("prof_martin", model.RoleProfessor)
	alice := st.addUser("alice", model.RoleStudent)
	bob := st.addUser("bob", model.RoleStudent)

	algebre := st.addCourse("Algèbre", dupont.UserID)
	st.addCourse("Chimie", martin.UserID)

	e1 := st.addEnrollment(alice.UserID, algebre.CourseID)
	st.addEnrollment(bob.UserID, algebre.CourseID)
	st.grades[e1.EnrollmentID] = &model.Grade{EnrollmentID: e1.EnrollmentID, Value: 15}
	return st
}

func TestAggregateCourses(t *testing.T) {
	st := reportFixture(t)
	svc := NewReportService(st.repo(), zap.NewNop())

	groups, err := svc.AggregateCourses(context.Background())
	if err != nil {
		t.Fatalf("聚合报表失败: %v", err)
	}

	if len(groups) != 2 {
		t.Fatalf("期望 2 门课程，实际 %d", len(groups))
	}

	// 按课程名排序
	if groups[0].CourseName != "Algèbre" || groups[1].CourseName != "Chimie" {
		t.Fatalf("课程排序错误: %q, %q", groups[0].CourseName, groups[1].CourseName)
	}

	algebre := groups[0]
	if algebre.ProfessorName != "prof_dupont" {
		t.Errorf("期望教师 prof_dupont，实际 %s", algebre.ProfessorName)
	}
	if len(algebre.Students) != 2 {
		t.Fatalf("Algèbre 期望 2 名学生，实际 %d", len(algebre.Students))
	}
	if algebre.Students[0].StudentName != "alice" || algebre.Students[0].Grade == nil || *algebre.Students[0].Grade != 15 {
		t.Errorf("alice 成绩期望 15，实际 %v", algebre.Students[0].Grade)
	}
	if algebre.Students[1].StudentName != "bob" || algebre.Students[1].Grade != nil {
		t.Errorf("bob 未录入成绩应为 nil，实际 %v", algebre.Students[1].Grade)
	}

	// 零选课课程保留，学生列表为空而非 nil
	chimie := groups[1]
	if chimie.Students == nil || len(chimie.Students) != 0 {
		t.Errorf("零选课课程的学生列表应为空列表，实际 %v", chimie.Students)
	}
}

func TestAggregateCourses_Empty(t *testing.T) {
	st := newMockStore()
	svc := NewReportService(st.repo(), zap.NewNop())

	groups, err := svc.AggregateCourses(context.Background())
	if err != nil {
		t.Fatalf("空库聚合失败: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("空库期望 0 门课程，实际 %d", len(groups))
	}
}

func TestExportCourses(t *testing.T) {
	st := reportFixture(t)
	svc := NewReportService(st.repo(), zap.NewNop())

	buf, filename, err := svc.ExportCourses(context.Background())
	if err != nil {
		t.Fatalf("导出 Excel 失败: %v", err)
	}
	if !strings.HasPrefix(filename, "rapport_cours_") || !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名格式错误: %s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("导出内容无法作为 xlsx 打开: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Cours")
	if err != nil {
		t.Fatalf("读取工作表失败: %v", err)
	}

	// 表头 + alice + bob + 零选课的 Chimie
	if len(rows) != 4 {
		t.Fatalf("期望 4 行，实际 %d", len(rows))
	}
	if rows[0][0] != "Cours" || rows[0][3] != "Note" {
		t.Errorf("表头错误: %v", rows[0])
	}
	if rows[1][2] != "alice" || rows[1][3] != "15" {
		t.Errorf("alice 行错误: %v", rows[1])
	}
	// bob 行成绩列为空
	if rows[2][2] != "bob" {
		t.Errorf("bob 行错误: %v", rows[2])
	}
	// 零选课课程只有课程与教师两列
	if rows[3][0] != "Chimie" || rows[3][1] != "prof_martin" {
		t.Errorf("Chimie 行错误: %v", rows[3])
	}
}
