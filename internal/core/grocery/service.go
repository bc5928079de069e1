package grocery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recipe-grocery/internal/core/ingredient"
	"recipe-grocery/internal/core/queue"
	"recipe-grocery/internal/infrastructure/config"
	"recipe-grocery/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ListStore 清單儲存；cache.ListStore 為 redis 實作
type ListStore interface {
	Save(ctx context.Context, id string, list any) error
	Load(ctx context.Context, id string, dst any) error
}

// Service 購物清單服務
type Service struct {
	parser   *ingredient.Parser
	queue    *queue.Manager
	store    ListStore
	maxLines int
	now      func() time.Time
}

// NewService 創建購物清單服務；queue 或 store 可為 nil
func NewService(cfg *config.Config, q *queue.Manager, store ListStore) *Service {
	return &Service{
		parser:   ingredient.NewParser(cfg.Ingredient.LowConfidence),
		queue:    q,
		store:    store,
		maxLines: cfg.Request.MaxLines,
		now:      time.Now,
	}
}

// StorageEnabled 是否設定了清單儲存
func (s *Service) StorageEnabled() bool {
	return s.store != nil
}

// ParseRecipe 解析一份食譜並在食譜內去重
func (s *Service) ParseRecipe(recipeID string, lines []string) []ingredient.Record {
	return ingredient.Dedupe(s.parser.ParseLines(lines, recipeID))
}

// ValidateLines 檢查行數限制
func (s *Service) ValidateLines(lines []string) error {
	if len(common.NonEmptyLines(lines)) == 0 {
		return common.NewValidationError("lines must contain at least one ingredient")
	}
	if s.maxLines > 0 && len(lines) > s.maxLines {
		return common.NewValidationError(fmt.Sprintf("too many lines: %d > %d", len(lines), s.maxLines))
	}
	return nil
}

// BuildList 並行解析每份食譜，依輸入順序跨食譜合併
func (s *Service) BuildList(ctx context.Context, recipes []RecipeInput) (*List, error) {
	if len(recipes) == 0 {
		return nil, common.NewValidationError("at least one recipe is required")
	}
	for i, r := range recipes {
		if err := s.ValidateLines(r.Lines); err != nil {
			return nil, fmt.Errorf("recipe %d: %w", i, err)
		}
	}

	start := time.Now()
	parsed := make([][]ingredient.Record, len(recipes))

	g, gctx := errgroup.WithContext(ctx)
	for i, r := range recipes {
		g.Go(func() error {
			records, err := s.parseQueued(gctx, r)
			if err != nil {
				return fmt.Errorf("failed to parse recipe %q: %w", r.RecipeID, err)
			}
			parsed[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := ingredient.Consolidate(parsed...)
	list := &List{
		ID:        common.GenerateUUID(),
		CreatedAt: s.now().UTC(),
		RecipeIDs: recipeIDs(recipes),
		Records:   records,
		Items:     ToItems(records),
	}

	common.LogInfo("Grocery list built",
		zap.String("list_id", list.ID),
		zap.Int("recipes", len(recipes)),
		zap.Int("items", len(list.Items)),
		zap.Duration("耗時", time.Since(start)),
	)
	return list, nil
}

// parseQueued 透過隊列解析；未設定隊列時直接解析
func (s *Service) parseQueued(ctx context.Context, r RecipeInput) ([]ingredient.Record, error) {
	if s.queue == nil {
		return s.ParseRecipe(r.RecipeID, r.Lines), nil
	}

	v, err := s.queue.Do(ctx, func(context.Context) (any, error) {
		return s.ParseRecipe(r.RecipeID, r.Lines), nil
	})
	if err != nil {
		return nil, err
	}
	records, ok := v.([]ingredient.Record)
	if !ok {
		return nil, fmt.Errorf("unexpected queue result %T", v)
	}
	return records, nil
}

// MergeRecords 合併兩份已解析的清單
func (s *Service) MergeRecords(a, b []ingredient.Record) []ingredient.Record {
	return ingredient.MergeLists(a, b)
}

// SaveList 儲存清單
func (s *Service) SaveList(ctx context.Context, list *List) error {
	if s.store == nil {
		return common.ErrStorageDisabled
	}
	if err := s.store.Save(ctx, list.ID, list); err != nil {
		return common.ErrServiceUnavailable.Wrap(err)
	}
	return nil
}

// GetList 讀取清單
func (s *Service) GetList(ctx context.Context, id string) (*List, error) {
	if s.store == nil {
		return nil, common.ErrStorageDisabled
	}
	if !common.IsValidUUID(id) {
		return nil, common.ErrListNotFound
	}

	var list List
	if err := s.store.Load(ctx, id, &list); err != nil {
		if errors.Is(err, common.ErrListNotFound) {
			return nil, err
		}
		return nil, common.ErrServiceUnavailable.Wrap(err)
	}
	return &list, nil
}

func recipeIDs(recipes []RecipeInput) []string {
	ids := make([]string, 0, len(recipes))
	for _, r := range recipes {
		if r.RecipeID != "" {
			ids = append(ids, r.RecipeID)
		}
	}
	return ids
}
