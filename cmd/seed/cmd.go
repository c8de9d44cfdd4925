package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/seed"
	"github.com/xiebiao/bookcatalog/pkg/logger"
)

type options struct {
	configFile string
	file       string
	dryRun     bool
	timeout    time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "seed",
		Short:         "导入图书目录到MySQL",
		Long:          `读取YAML或JSON格式的目录文件（ISBN → 图书），按文件顺序写入MySQL，重复导入是幂等的。`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "配置文件路径（默认按BOOKCATALOG_ENV查找config目录）")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "目录文件路径（默认使用storage.seed_file）")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "只解析文件，不写入数据库")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", time.Minute, "导入超时时间")

	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func run(ctx context.Context, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(opts.configFile)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	file := opts.file
	if file == "" {
		file = cfg.Storage.SeedFile
	}

	books, err := seed.LoadBooksFile(file)
	if err != nil {
		return err
	}
	log.Info("目录文件解析完成", zap.String("file", file), zap.Int("books", len(books)))

	if opts.dryRun {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	db, err := mysql.NewDB(cfg, log)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	n, err := mysql.NewBookImporter(db).Import(ctx, books)
	if err != nil {
		return fmt.Errorf("导入失败: %w", err)
	}
	log.Info("目录导入完成", zap.Int("imported", n))

	// 目录变化后旧的缓存快照失效
	client, err := redis.NewClient(cfg, log)
	if err != nil {
		log.Warn("连接Redis失败，跳过缓存清理", zap.Error(err))
		return nil
	}
	if client == nil {
		return nil
	}
	defer client.Close()

	if err := redis.NewCatalogCache(client, cfg.Catalog.CacheTTL).Invalidate(ctx); err != nil {
		log.Warn("清理目录缓存失败", zap.Error(err))
		return nil
	}
	log.Info("目录缓存已清理", zap.String("key", redis.CatalogKey))
	return nil
}
