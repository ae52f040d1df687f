package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/minhasantafonte/santafonte-backend/internal/app/model"
	"github.com/minhasantafonte/santafonte-backend/internal/configurator"
	"github.com/minhasantafonte/santafonte-backend/internal/metrics"
	"github.com/minhasantafonte/santafonte-backend/pkg/logger"
)

// ErrCustomizerWrongStep wraps every transition the wizard refuses.
var ErrCustomizerWrongStep = errors.New("customizer: action not allowed on this step")

// CustomizerView is the wizard state with the options for the current step.
type CustomizerView struct {
	State     configurator.State          `json:"state"`
	Step      int                         `json:"step"`
	Pool      model.OptionType            `json:"pool,omitempty"`
	Options   []model.RosaryOption        `json:"options"`
	Selection model.CustomRosarySelection `json:"selection"`
	BasePrice float64                     `json:"base_price"`
	Price     float64                     `json:"price"`
}

// Quote is a price estimate for an arbitrary selection.
type Quote struct {
	BasePrice float64 `json:"base_price"`
	Price     float64 `json:"price"`
}

type CustomizerService interface {
	State(ctx context.Context, visitor string) (*CustomizerView, error)
	Select(ctx context.Context, visitor, optionID string) (*CustomizerView, error)
	Back(ctx context.Context, visitor string) (*CustomizerView, error)
	Reset(ctx context.Context, visitor string) (*CustomizerView, error)
	Quote(optionIDs []string) (*Quote, error)
	Commit(ctx context.Context, visitor string) (*model.CartItem, *CartView, error)
}

type customizerService struct {
	store         configurator.Store
	optionService OptionService
	cartService   CartService
}

func NewCustomizerService(store configurator.Store, optionService OptionService, cartService CartService) CustomizerService {
	return &customizerService{
		store:         store,
		optionService: optionService,
		cartService:   cartService,
	}
}

func (s *customizerService) view(w *configurator.Wizard) (*CustomizerView, error) {
	base, err := s.optionService.BasePrice()
	if err != nil {
		return nil, err
	}

	options := []model.RosaryOption{}
	if pool := w.Pool(); pool != "" {
		options = s.optionService.Pool(pool)
	}
	return &CustomizerView{
		State:     w.State,
		Step:      w.Step(),
		Pool:      w.Pool(),
		Options:   options,
		Selection: w.Selection,
		BasePrice: base,
		Price:     w.Price(base),
	}, nil
}

func (s *customizerService) save(ctx context.Context, visitor string, w *configurator.Wizard) (*CustomizerView, error) {
	if err := s.store.Save(ctx, visitor, w); err != nil {
		logger.Error("Failed to save customizer state", err, map[string]interface{}{
			"visitor": visitor,
		})
		return nil, err
	}
	return s.view(w)
}

func (s *customizerService) State(ctx context.Context, visitor string) (*CustomizerView, error) {
	w, err := s.store.Load(ctx, visitor)
	if err != nil {
		return nil, err
	}
	return s.view(w)
}

func (s *customizerService) Select(ctx context.Context, visitor, optionID string) (*CustomizerView, error) {
	option, err := s.optionService.Get(optionID)
	if err != nil {
		return nil, err
	}

	w, err := s.store.Load(ctx, visitor)
	if err != nil {
		return nil, err
	}
	if err := w.Select(*option); err != nil {
		logger.Warn("Customizer selection rejected", map[string]interface{}{
			"visitor":   visitor,
			"option_id": optionID,
			"state":     w.State,
			"error":     err.Error(),
		})
		return nil, errors.Join(ErrCustomizerWrongStep, err)
	}
	return s.save(ctx, visitor, w)
}

func (s *customizerService) Back(ctx context.Context, visitor string) (*CustomizerView, error) {
	w, err := s.store.Load(ctx, visitor)
	if err != nil {
		return nil, err
	}
	w.Back()
	return s.save(ctx, visitor, w)
}

func (s *customizerService) Reset(ctx context.Context, visitor string) (*CustomizerView, error) {
	return s.save(ctx, visitor, configurator.New())
}

// Quote prices a selection given by option ids, at most one per pool.
func (s *customizerService) Quote(optionIDs []string) (*Quote, error) {
	base, err := s.optionService.BasePrice()
	if err != nil {
		return nil, err
	}

	var selection model.CustomRosarySelection
	for _, id := range optionIDs {
		option, err := s.optionService.Get(id)
		if err != nil {
			return nil, err
		}
		if selection.Get(option.Type) != nil {
			return nil, errors.Join(ErrCustomizerWrongStep, configurator.ErrWrongPool)
		}
		selection.Set(option.Type, option)
	}

	return &Quote{
		BasePrice: base,
		Price:     configurator.Price(base, selection),
	}, nil
}

// Commit adds the configured rosary to the visitor's cart and restarts the
// wizard. The wizard is only reset once the cart write succeeded.
func (s *customizerService) Commit(ctx context.Context, visitor string) (*model.CartItem, *CartView, error) {
	base, err := s.optionService.BasePrice()
	if err != nil {
		return nil, nil, err
	}

	w, err := s.store.Load(ctx, visitor)
	if err != nil {
		return nil, nil, err
	}
	if w.Step() == 0 {
		return nil, nil, errors.Join(ErrCustomizerWrongStep, configurator.ErrUnknownState)
	}

	item := w.Commit(base, s.optionService.Pool(model.OptionMaterial), "custom-"+uuid.New().String())

	cartView, err := s.cartService.AddCustom(ctx, visitor, item)
	if err != nil {
		return nil, nil, err
	}
	if _, err := s.save(ctx, visitor, w); err != nil {
		return nil, nil, err
	}

	metrics.RecordCustomizerCommit()
	logger.Info("Custom rosary added to cart", map[string]interface{}{
		"visitor": visitor,
		"item_id": item.ID,
		"price":   item.Price,
	})
	return &item, cartView, nil
}
