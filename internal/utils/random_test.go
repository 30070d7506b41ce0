package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoldVietnamese(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Nguyễn Văn Tuấn", "nguyen van tuan"},
		{"Đặng Thị Hương", "dang thi huong"},
		{"Lê Hữu Phước", "le huu phuoc"},
		{"admin", "admin"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FoldVietnamese(tt.in))
	}
}

func TestGenerateUsernameFromFullName(t *testing.T) {
	username := GenerateUsernameFromFullName("Nguyễn Văn Tuấn")
	require.NotEmpty(t, username)

	// tên riêng đứng trước, theo sau là chữ cái đầu của họ và tên đệm
	assert.True(t, strings.HasPrefix(username, "tuannv"), "username = %s", username)

	// chỉ gồm chữ thường không dấu và chữ số
	for _, r := range username {
		assert.True(t, (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'), "ký tự lạ %q trong %s", r, username)
	}
}

func TestGenerateRandomPassword(t *testing.T) {
	password := GenerateRandomPassword(12)
	assert.Len(t, password, 12)
}

func TestGenerateRandomOTP(t *testing.T) {
	otp := GenerateRandomOTP()
	assert.Len(t, otp, 6)
}

func TestGenerateRandomStaff(t *testing.T) {
	staff, err := GenerateRandomStaff("secret123", "minimart.vn")
	require.NoError(t, err)

	assert.NotEmpty(t, staff.Username)
	assert.NotEmpty(t, staff.FullName)
	assert.True(t, strings.HasSuffix(staff.Email, "@minimart.vn"))
	assert.True(t, staff.Role.Valid())
	assert.NotEmpty(t, staff.PasswordHash)
}
