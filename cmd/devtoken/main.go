package main

import (
	"flag"
	"fmt"
	"os"

	"teachove/backend/config"
	"teachove/backend/pkg/jwt"
)

// 本地开发用：按配置中的 jwt_secret 签发访问令牌
func main() {
	configPath := flag.String("config", "", "配置文件路径")
	userID := flag.String("user", "admin-1", "用户 ID")
	role := flag.String("role", jwt.RoleSchoolAdmin, "角色: school_admin | teacher | student")
	schoolID := flag.String("school", "", "学校 ID")
	classID := flag.String("class", "", "班级 ID（教师/学生）")
	year := flag.String("year", "", "学年，留空使用服务端默认值")
	flag.Parse()

	if *schoolID == "" {
		fmt.Fprintln(os.Stderr, "必须指定 -school")
		os.Exit(2)
	}
	switch *role {
	case jwt.RoleSchoolAdmin, jwt.RoleTeacher, jwt.RoleStudent:
	default:
		fmt.Fprintf(os.Stderr, "未知角色: %s\n", *role)
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	token, err := jwt.NewManager(&cfg.Auth).GenerateAccessToken(jwt.Identity{
		UserID:       *userID,
		Role:         *role,
		SchoolID:     *schoolID,
		ClassID:      *classID,
		AcademicYear: *year,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "签发令牌失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
