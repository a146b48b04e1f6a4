package db

import (
	"fmt"
	"yatube/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to postgres and migrates the schema.
func Open(dsn string, debug bool) (*gorm.DB, error) {
	level := logger.Warn
	if debug {
		level = logger.Info
	}

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	log.Info().Msg("Database connection established")

	if err := Migrate(gdb); err != nil {
		return nil, err
	}
	log.Info().Msg("Database migration completed")

	seedGroups(gdb)
	return gdb, nil
}

// Migrate creates or updates every table.
func Migrate(gdb *gorm.DB) error {
	err := gdb.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

func seedGroups(gdb *gorm.DB) {
	// 已有分组则跳过
	var count int64
	gdb.Model(&models.Group{}).Count(&count)
	if count > 0 {
		log.Debug().Msg("Groups already seeded, skipping")
		return
	}

	groups := []models.Group{
		{Title: "Общее", Slug: "general", Description: "Посты на любые темы"},
	}

	for _, group := range groups {
		if err := gdb.Create(&group).Error; err != nil {
			log.Error().Err(err).Str("slug", group.Slug).Msg("Failed to create group")
		}
	}
	log.Info().Msg("Initial groups created successfully")
}
