package middleware

import "testing"

func TestAllowed_ExactMatch(t *testing.T) {
	cases := []struct {
		role    string
		allowed []string
		want    bool
	}{
		{"admin", []string{"admin"}, true},
		{"professor", []string{"professor"}, true},
		{"student", []string{"student"}, true},
		// 无角色层级：admin 不隐含 professor/student 权限
		{"admin", []string{"professor"}, false},
		{"admin", []string{"student"}, false},
		{"professor", []string{"admin"}, false},
		{"student", []string{"professor"}, false},
		// 多允许角色
		{"professor", []string{"admin", "professor"}, true},
		{"student", []string{"admin", "professor"}, false},
		// 未知角色一律拒绝
		{"superuser", []string{"admin", "professor", "student"}, false},
		{"", []string{"admin"}, false},
	}

	for _, tc := range cases {
		if got := Allowed(tc.role, tc.allowed...); got != tc.want {
			t.Errorf("Allowed(%q, %v) 期望 %v，实际 %v", tc.role, tc.allowed, tc.want, got)
		}
	}
}
