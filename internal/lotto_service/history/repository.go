package history

import (
	"context"
	"fmt"
	"time"

	"lotto_service/internal/lotto_service/analysis"
	"lotto_service/pkg/databaseManager"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DrawModel 開獎歸檔資料庫模型
type DrawModel struct {
	Round     int       `gorm:"column:round;primaryKey;autoIncrement:false"`
	N1        int       `gorm:"column:n1;not null"`
	N2        int       `gorm:"column:n2;not null"`
	N3        int       `gorm:"column:n3;not null"`
	N4        int       `gorm:"column:n4;not null"`
	N5        int       `gorm:"column:n5;not null"`
	N6        int       `gorm:"column:n6;not null"`
	Bonus     *int      `gorm:"column:bonus"`
	DrawDate  string    `gorm:"column:draw_date;type:varchar(10)"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

// 設置表名
func (DrawModel) TableName() string {
	return "lotto_draws"
}

// toModel 將開獎轉為資料庫模型，無期數或主號碼不足時返回 false
func toModel(d analysis.Draw) (DrawModel, bool) {
	if d.Round <= 0 || !d.HasMain() {
		return DrawModel{}, false
	}
	m := DrawModel{
		Round:    d.Round,
		N1:       d.Numbers[0],
		N2:       d.Numbers[1],
		N3:       d.Numbers[2],
		N4:       d.Numbers[3],
		N5:       d.Numbers[4],
		N6:       d.Numbers[5],
		DrawDate: d.Date,
	}
	if bonus, ok := d.Bonus(); ok {
		m.Bonus = &bonus
	}
	return m, true
}

// toDraw 將資料庫模型轉回開獎
func (m DrawModel) toDraw() analysis.Draw {
	numbers := []int{m.N1, m.N2, m.N3, m.N4, m.N5, m.N6}
	if m.Bonus != nil {
		numbers = append(numbers, *m.Bonus)
	}
	return analysis.Draw{Round: m.Round, Numbers: numbers, Date: m.DrawDate}
}

// DrawRepository 開獎歸檔
type DrawRepository interface {
	LoadDraws(ctx context.Context) ([]analysis.Draw, error)
	SaveDraws(ctx context.Context, draws []analysis.Draw) error
	LatestRound(ctx context.Context) (int, error)
}

// DBRepository 使用 GORM 的開獎歸檔，同時也是一個歷史資料來源
type DBRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewDBRepository 創建資料庫歸檔並自動遷移資料表
func NewDBRepository(dbManager databaseManager.DatabaseManager, logger *zap.Logger) (*DBRepository, error) {
	repo := &DBRepository{
		db:     dbManager.GetDB(),
		logger: logger.With(zap.String("component", "draw_repository")),
	}

	if err := repo.db.AutoMigrate(&DrawModel{}); err != nil {
		repo.logger.Error("自動遷移開獎資料表失敗", zap.Error(err))
		return nil, fmt.Errorf("auto migrate lotto_draws: %w", err)
	}

	return repo, nil
}

func (r *DBRepository) Name() string {
	return "database"
}

// Load 實作 Source
func (r *DBRepository) Load(ctx context.Context) ([]analysis.Draw, error) {
	return r.LoadDraws(ctx)
}

// LoadDraws 讀取全部歸檔，依期數排序
func (r *DBRepository) LoadDraws(ctx context.Context) ([]analysis.Draw, error) {
	var models []DrawModel
	if err := r.db.WithContext(ctx).Order("round ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("%w: 讀取開獎歸檔失敗: %v", analysis.ErrDataUnavailable, err)
	}

	draws := make([]analysis.Draw, 0, len(models))
	for _, m := range models {
		draws = append(draws, m.toDraw())
	}
	return draws, nil
}

// SaveDraws 以期數為鍵寫入，已存在則更新
func (r *DBRepository) SaveDraws(ctx context.Context, draws []analysis.Draw) error {
	models := make([]DrawModel, 0, len(draws))
	for _, d := range draws {
		if m, ok := toModel(d); ok {
			models = append(models, m)
		}
	}
	if len(models) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "round"}},
		DoUpdates: clause.AssignmentColumns([]string{"n1", "n2", "n3", "n4", "n5", "n6", "bonus", "draw_date"}),
	}).Create(&models).Error
	if err != nil {
		r.logger.Error("寫入開獎歸檔失敗", zap.Int("count", len(models)), zap.Error(err))
		return fmt.Errorf("save draws: %w", err)
	}

	r.logger.Info("寫入開獎歸檔", zap.Int("count", len(models)))
	return nil
}

// LatestRound 返回已歸檔的最大期數，沒有資料時為 0
func (r *DBRepository) LatestRound(ctx context.Context) (int, error) {
	var latest *int
	if err := r.db.WithContext(ctx).Model(&DrawModel{}).Select("MAX(round)").Scan(&latest).Error; err != nil {
		return 0, fmt.Errorf("query latest round: %w", err)
	}
	if latest == nil {
		return 0, nil
	}
	return *latest, nil
}
