package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/minimart-vn/backoffice/backend/internal/domain"
)

var commonSurnames = []string{
	"Nguyễn", "Trần", "Lê", "Phạm", "Hoàng", "Huỳnh", "Phan", "Vũ", "Võ", "Đặng",
	"Bùi", "Đỗ", "Hồ", "Ngô", "Dương", "Lý", "Đinh", "Trịnh", "Mai", "Lâm",
}

var commonMiddleNames = []string{
	"Văn", "Thị", "Hữu", "Đức", "Minh", "Ngọc", "Thành", "Quốc", "Thanh", "Xuân",
}

var commonGivenNames = []string{
	"An", "Bình", "Châu", "Dũng", "Giang", "Hà", "Hải", "Hạnh", "Hiếu", "Hùng",
	"Hương", "Khánh", "Lan", "Linh", "Long", "Mai", "Nam", "Ngân", "Phúc", "Phương",
	"Quân", "Sơn", "Tâm", "Thảo", "Trang", "Trung", "Tuấn", "Tú", "Vy", "Yến",
}

func GenerateRandomVietnameseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	middle := commonMiddleNames[rand.Intn(len(commonMiddleNames))]
	given := commonGivenNames[rand.Intn(len(commonGivenNames))]
	return surname + " " + middle + " " + given
}

var staffRoles = []domain.Role{
	domain.RoleWarehouse,
	domain.RoleSales,
	domain.RoleCashier,
	domain.RoleManager,
}

func GenerateRandomRole() domain.Role {
	return staffRoles[rand.Intn(len(staffRoles))]
}

var employmentTypes = []domain.EmploymentType{
	domain.EmploymentFullTime,
	domain.EmploymentPartTime,
}

func GenerateRandomEmploymentType() domain.EmploymentType {
	return employmentTypes[rand.Intn(len(employmentTypes))]
}

// đ/Đ không phải dấu thanh kết hợp nên NFD không tách được, phải thay riêng
var dReplacer = strings.NewReplacer("đ", "d", "Đ", "D")

var diacriticRemover = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldVietnamese bỏ toàn bộ dấu tiếng Việt và chuyển về chữ thường,
// ví dụ "Nguyễn Văn Tuấn" thành "nguyen van tuan".
func FoldVietnamese(s string) string {
	s = dReplacer.Replace(s)
	folded, _, err := transform.String(diacriticRemover, s)
	if err != nil {
		// dữ liệu vào không phải UTF-8 hợp lệ, giữ nguyên chuỗi gốc
		folded = s
	}
	return strings.ToLower(folded)
}

var digits = "0123456789"

// GenerateUsernameFromFullName sinh tên đăng nhập theo thói quen đặt tên ở Việt Nam:
// tên riêng + chữ cái đầu của họ và tên đệm + vài chữ số ngẫu nhiên,
// ví dụ "Nguyễn Văn Tuấn" thành "tuannv42".
func GenerateUsernameFromFullName(fullName string) string {
	parts := strings.Fields(FoldVietnamese(fullName))
	if len(parts) == 0 {
		return ""
	}

	username := parts[len(parts)-1]
	for _, part := range parts[:len(parts)-1] {
		username += part[:1]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomStaff(password string, emailDomainName string) (*domain.Staff, error) {
	fullName := GenerateRandomVietnameseName()
	username := GenerateUsernameFromFullName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	staff := &domain.Staff{
		Username:       username,
		PasswordHash:   string(passwordHash),
		FullName:       fullName,
		Email:          username + "@" + emailDomainName,
		Role:           GenerateRandomRole(),
		EmploymentType: GenerateRandomEmploymentType(),
	}

	return staff, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}
