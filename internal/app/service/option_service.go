package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/minhasantafonte/santafonte-backend/internal/app/model"
	"github.com/minhasantafonte/santafonte-backend/internal/app/repository"
	"github.com/minhasantafonte/santafonte-backend/internal/optimistic"
	"github.com/minhasantafonte/santafonte-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrOptionNotFound = errors.New("rosary option not found")

// OptionInput creates the option when ID is empty or unknown, otherwise
// replaces it in place.
type OptionInput struct {
	ID    string           `json:"id"`
	Type  model.OptionType `json:"type" validate:"required"`
	Name  string           `json:"name" validate:"required,max=120"`
	Price float64          `json:"price"`
	Image string           `json:"image" validate:"omitempty,url"`
}

// OptionPools is the configurator catalog grouped by pool.
type OptionPools struct {
	Materials  []model.RosaryOption `json:"materials"`
	Colors     []model.RosaryOption `json:"colors"`
	Crucifixes []model.RosaryOption `json:"crucifixes"`
}

type OptionService interface {
	Load() error
	List() []model.RosaryOption
	Pool(optionType model.OptionType) []model.RosaryOption
	Pools() OptionPools
	Get(id string) (*model.RosaryOption, error)
	Upsert(input OptionInput) (*model.RosaryOption, error)
	Delete(id string, confirmed bool) error
	BasePrice() (float64, error)
	SetBasePrice(value float64) (float64, error)
	SyncStatus() optimistic.SyncState
}

type optionService struct {
	optionRepo repository.RosaryOptionRepository
	configRepo repository.StoreConfigRepository
	options    *optimistic.Collection[model.RosaryOption]
}

func NewOptionService(
	optionRepo repository.RosaryOptionRepository,
	configRepo repository.StoreConfigRepository,
) OptionService {
	return &optionService{
		optionRepo: optionRepo,
		configRepo: configRepo,
		options: optimistic.NewCollection("custom_options", func(o model.RosaryOption) string {
			return o.ID
		}),
	}
}

func (s *optionService) Load() error {
	options, err := s.optionRepo.FindAll()
	if err != nil {
		logger.Error("Failed to load rosary options", err)
		return err
	}
	s.options.Replace(options)

	logger.Info("Rosary options loaded", map[string]interface{}{
		"count": len(options),
	})
	return nil
}

func (s *optionService) List() []model.RosaryOption {
	return s.options.List()
}

// Pool returns the options of one type in catalog order.
func (s *optionService) Pool(optionType model.OptionType) []model.RosaryOption {
	pool := []model.RosaryOption{}
	for _, o := range s.options.List() {
		if o.Type == optionType {
			pool = append(pool, o)
		}
	}
	return pool
}

func (s *optionService) Pools() OptionPools {
	return OptionPools{
		Materials:  s.Pool(model.OptionMaterial),
		Colors:     s.Pool(model.OptionColor),
		Crucifixes: s.Pool(model.OptionCrucifix),
	}
}

func (s *optionService) Get(id string) (*model.RosaryOption, error) {
	option, ok := s.options.Get(id)
	if !ok {
		return nil, ErrOptionNotFound
	}
	return &option, nil
}

func (s *optionService) Upsert(input OptionInput) (*model.RosaryOption, error) {
	fields := checkStruct(input)
	if input.Type != "" && !input.Type.IsValid() {
		fields.add("type", "Tipo inválido, use material, color ou crucifix")
	}
	if err := fields.err(); err != nil {
		logger.Warn("Rosary option rejected", map[string]interface{}{
			"option_id": input.ID,
			"error":     err.Error(),
		})
		return nil, err
	}

	now := time.Now()
	option := model.RosaryOption{
		ID:        input.ID,
		Type:      input.Type,
		Name:      input.Name,
		Price:     input.Price,
		Image:     input.Image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if option.ID == "" {
		option.ID = uuid.New().String()
	} else if existing, ok := s.options.Get(option.ID); ok {
		option.CreatedAt = existing.CreatedAt
	}

	err := s.options.Upsert(option, func(o model.RosaryOption) error {
		return s.optionRepo.Upsert(&o)
	})
	recordWrite(s.options.Name(), err)
	if err != nil {
		logger.Error("Failed to upsert rosary option", err, map[string]interface{}{
			"option_id": option.ID,
		})
		return nil, err
	}

	logger.Info("Rosary option saved", map[string]interface{}{
		"option_id": option.ID,
		"type":      option.Type,
	})
	return &option, nil
}

func (s *optionService) Delete(id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	err := s.options.Remove(id, s.optionRepo.Delete)
	recordWrite(s.options.Name(), err)
	if err != nil {
		if errors.Is(err, optimistic.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOptionNotFound
		}
		logger.Error("Failed to delete rosary option", err, map[string]interface{}{
			"option_id": id,
		})
		return err
	}

	logger.Info("Rosary option deleted", map[string]interface{}{
		"option_id": id,
	})
	return nil
}

// BasePrice is the configurator starting price.
func (s *optionService) BasePrice() (float64, error) {
	return s.configRepo.GetValue(model.ConfigBaseRosaryPrice, model.DefaultBaseRosaryPrice)
}

// SetBasePrice stores value, raising negatives to zero, and returns what was stored.
func (s *optionService) SetBasePrice(value float64) (float64, error) {
	if value < 0 {
		value = 0
	}
	if err := s.configRepo.SetValue(model.ConfigBaseRosaryPrice, value); err != nil {
		logger.Error("Failed to set base price", err, map[string]interface{}{
			"value": value,
		})
		return 0, err
	}

	logger.Info("Base rosary price updated", map[string]interface{}{
		"value": value,
	})
	return value, nil
}

func (s *optionService) SyncStatus() optimistic.SyncState {
	return s.options.Status()
}
