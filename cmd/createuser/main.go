// createuser 命令行工具：直接向数据库写入用户，用于初始化管理员账号。
//
//	go run ./cmd/createuser -username admin -password secret123 -role admin
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"gestion-cours/backend/config"
	"gestion-cours/backend/internal/model"
	"gestion-cours/backend/internal/repository"
	"gestion-cours/backend/pkg/database"
	"gestion-cours/backend/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径")
	username := flag.String("username", "", "用户名")
	password := flag.String("password", "", "密码（至少 8 字符）")
	role := flag.String("role", model.RoleStudent, "角色: admin / professor / student")
	email := flag.String("email", "", "邮箱（可选）")
	flag.Parse()

	if *username == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}
	if len(*password) < 8 {
		log.Fatal("密码至少 8 字符")
	}
	if !model.ValidRole(*role) {
		log.Fatalf("无效的角色: %s", *role)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	zapLogger, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer zapLogger.Sync()

	db, err := database.NewDB(&cfg.Database, zapLogger)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("获取底层数据库连接失败: %v", err)
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, zapLogger); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("密码加密失败: %v", err)
	}

	repo := repository.NewRepository(db)
	ctx := context.Background()

	if existing, err := repo.User.GetByUsername(ctx, *username); err == nil && existing != nil {
		log.Fatalf("用户名已存在: %s", *username)
	}

	user := &model.User{
		UserID:       uuid.NewString(),
		Username:     *username,
		PasswordHash: string(hash),
		Role:         *role,
		Email:        *email,
	}

	if err := repo.User.Create(ctx, user); err != nil {
		log.Fatalf("创建用户失败: %v", err)
	}

	fmt.Printf("用户创建成功: %s (%s)\n", user.Username, user.Role)
}
