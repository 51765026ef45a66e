package utils

import (
	"fmt"
	"math/rand"

	"github.com/mozillazg/go-pinyin"
	"golang.org/x/crypto/bcrypt"

	"github.com/minfang-dev/station-manager/backend/internal/domain"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

func GenerateRandomRole() domain.Role {
	return domain.StaffRoles[rand.Intn(len(domain.StaffRoles))]
}

var digits = "0123456789"

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		username += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         GenerateRandomRole(),
		Team:         Teams[rand.Intn(len(Teams))],
	}

	return user, nil
}

var vehicleKinds = []string{"水罐车", "抢险救援车", "运兵车", "指挥车"}

func GenerateRandomVehicle() *domain.Vehicle {
	kind := vehicleKinds[rand.Intn(len(vehicleKinds))]
	return &domain.Vehicle{
		Name:        kind + fmt.Sprintf("%02d", rand.Intn(100)),
		PlateNumber: fmt.Sprintf("粤A%05d", rand.Intn(100000)),
		Kind:        kind,
	}
}

// GenerateRandomMission 在给定日期生成一个随机任务，
// 参与者从 userIDs 中抽取
func GenerateRandomMission(date string, userIDs []int64) *domain.Mission {
	startHour := rand.Intn(22)
	duration := rand.Intn(4) + 1

	m := &domain.Mission{
		Date:      date,
		StartTime: fmt.Sprintf("%02d:00", startHour),
		EndTime:   fmt.Sprintf("%02d:00", startHour+duration),
		Type:      domain.MissionTypes[rand.Intn(len(domain.MissionTypes))],
		Team:      Teams[rand.Intn(len(Teams))],
		Address:   fmt.Sprintf("演习地点%02d号", rand.Intn(100)),
	}

	for _, id := range pickRandomIDs(userIDs, rand.Intn(3)+1) {
		m.Participants = append(m.Participants, domain.MissionParticipant{UserID: id})
	}

	return m
}

// GenerateRandomShift 在给定日期生成一个 08:00 到次日 08:00 的整日班次
func GenerateRandomShift(date string, team string, userIDs []int64) *domain.Shift {
	s := &domain.Shift{
		Date: date,
		Team: team,
	}

	for _, id := range pickRandomIDs(userIDs, rand.Intn(3)+2) {
		s.Participants = append(s.Participants, domain.ShiftParticipant{
			UserID:   id,
			CheckIn:  "08:00",
			CheckOut: "08:00",
		})
	}

	return s
}

// pickRandomIDs 用 Fisher-Yates 洗牌算法随机抽取 n 个不重复的 ID
func pickRandomIDs(ids []int64, n int) []int64 {
	shuffled := make([]int64, len(ids))
	copy(shuffled, ids)

	for i := len(shuffled) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	if n > len(shuffled) {
		n = len(shuffled)
	}

	return shuffled[:n]
}
