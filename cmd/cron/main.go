package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"xinyuan_tech/entitlement-service/internal/conf"

	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/robfig/cron/v3"
	_ "go.uber.org/automaxprocs"
)

var (
	flagconf string
)

func init() {
	flag.StringVar(&flagconf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
}

func main() {
	flag.Parse()

	// 初始化配置
	c := config.New(
		config.WithSource(
			file.NewSource(flagconf),
		),
	)
	defer c.Close()

	if err := c.Load(); err != nil {
		panic(err)
	}

	var bc conf.Bootstrap
	if err := c.Scan(&bc); err != nil {
		panic(err)
	}

	// 初始化应用
	app, cleanup, err := wireApp(&bc)
	if err != nil {
		panic(err)
	}
	defer cleanup()

	// 创建定时任务调度器（支持秒级调度）
	cronScheduler := cron.New(cron.WithSeconds())

	// 1. 历史记录裁剪 - 每天凌晨 2 点执行
	_, err = cronScheduler.AddFunc("0 0 2 * * *", func() {
		log.Println("[CRON] Starting history retention trim...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		trimmed, err := app.entitlementUsecase.TrimHistory(ctx)
		if err != nil {
			log.Printf("[CRON] Error trimming history: %v", err)
		} else {
			log.Printf("[CRON] Trimmed %d events beyond retention limits", trimmed)
			log.Println("[CRON] Finished history retention trim")
		}
	})
	if err != nil {
		log.Printf("Failed to add retention trim job: %v", err)
	}

	// 2. 当日计数器校准 - 每天 00:05 执行 (新的一天, 以数据库计数为准重建 Redis 计数器)
	_, err = cronScheduler.AddFunc("0 5 0 * * *", func() {
		log.Println("[CRON] Starting daily counter reconciliation...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		reconciled, err := app.entitlementUsecase.ReconcileDailyCounters(ctx, time.Now().UTC())
		if err != nil {
			log.Printf("[CRON] Error reconciling daily counters: %v", err)
		} else {
			log.Printf("[CRON] Reconciled daily counters for %d users", reconciled)
			log.Println("[CRON] Finished daily counter reconciliation")
		}
	})
	if err != nil {
		log.Printf("Failed to add counter reconciliation job: %v", err)
	}

	// 启动定时任务
	cronScheduler.Start()
	log.Println("========================================")
	log.Println("Cron jobs started successfully")
	log.Println("Scheduled jobs:")
	log.Println("  - Retention trim:          Every day at 02:00")
	log.Println("  - Counter reconciliation:  Every day at 00:05")
	log.Println("========================================")

	// 优雅退出
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down gracefully...")

	// 停止定时任务
	ctx := cronScheduler.Stop()
	select {
	case <-ctx.Done():
		log.Println("Cron jobs stopped gracefully")
	case <-time.After(5 * time.Second):
		log.Println("Cron jobs forced to stop after timeout")
	}
}
