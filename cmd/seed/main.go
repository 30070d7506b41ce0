package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/minimart-vn/backoffice/backend/internal/config"
	"github.com/minimart-vn/backoffice/backend/internal/repository"
	"github.com/minimart-vn/backoffice/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "thao tác cần chạy (1: thêm nhân viên ngẫu nhiên, 2: thêm bộ ca mặc định, 3: phân ca ngẫu nhiên cho tháng hiện tại)")
	flag.IntVar(&n, "n", 5, "số bản ghi cần thêm")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// nạp cấu hình
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("không thể nạp cấu hình", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// tạo connection pool
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("không thể tạo connection pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open chỉ tạo pool, cần ping để chắc chắn database sẵn sàng
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("không thể kết nối database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 1:
		if n <= 0 {
			slog.Error("số nhân viên cần thêm phải lớn hơn 0")
			return
		}
		seed.SeedStaffs(cfg, repo, n)
	case 2:
		seed.SeedShiftTemplates(repo)
	case 3:
		seed.SeedAssignments(repo)
	default:
		slog.Error("chưa chỉ định thao tác, dùng -op 1|2|3")
	}
}
