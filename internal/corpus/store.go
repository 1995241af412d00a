package corpus

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MatchRow is the Postgres shape of one historical match, written by
// the data collector.
type MatchRow struct {
	ID          uint   `gorm:"primaryKey"`
	Enemy1      string `gorm:"column:enemy1"`
	Main1       string `gorm:"column:main1"`
	Enemy2      string `gorm:"column:enemy2"`
	Main2       string `gorm:"column:main2"`
	Enemy3      string `gorm:"column:enemy3"`
	Main3       string `gorm:"column:main3"`
	Enemy4      string `gorm:"column:enemy4"`
	Main4       string `gorm:"column:main4"`
	Enemy5      string `gorm:"column:enemy5"`
	Main5       string `gorm:"column:main5"`
	MainPreB1   string `gorm:"column:main_pre_b1"`
	MainPreB2   string `gorm:"column:main_pre_b2"`
	EnemyPreB1  string `gorm:"column:enemy_pre_b1"`
	EnemyPreB2  string `gorm:"column:enemy_pre_b2"`
	MainPostB   string `gorm:"column:main_post_b"`
	EnemyPostB  string `gorm:"column:enemy_post_b"`
	IsFirst     int    `gorm:"column:is_first"`
	IsWin       int    `gorm:"column:is_win"`
}

func (MatchRow) TableName() string { return "draft_matches" }

// DBSource reads records from Postgres.
type DBSource struct {
	db *gorm.DB
}

// OpenDB connects to Postgres and prepares the match table.
func OpenDB(dsn string) (*DBSource, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	if err := db.AutoMigrate(&MatchRow{}); err != nil {
		return nil, fmt.Errorf("%w: migrate: %v", ErrDataUnavailable, err)
	}
	return &DBSource{db: db}, nil
}

func (s *DBSource) Records(ctx context.Context) ([]Record, error) {
	var rows []MatchRow
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	records := make([]Record, 0, len(rows))
	for _, r := range rows {
		rec := Record{
			MyPicks:      []string{r.Main1, r.Main2, r.Main3, r.Main4, r.Main5},
			EnemyPicks:   []string{r.Enemy1, r.Enemy2, r.Enemy3, r.Enemy4, r.Enemy5},
			MyPostBan:    r.MainPostB,
			EnemyPostBan: r.EnemyPostB,
			MyFirst:      r.IsFirst == 1,
			MyWin:        r.IsWin == 0,
		}
		for _, b := range []string{r.MainPreB1, r.MainPreB2} {
			if b != "" {
				rec.MyPreBans = append(rec.MyPreBans, b)
			}
		}
		for _, b := range []string{r.EnemyPreB1, r.EnemyPreB2} {
			if b != "" {
				rec.EnemyPreBans = append(rec.EnemyPreBans, b)
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
