package luggage

import (
	"log/slog"
)

// Repository defines the data access methods for luggage items. The wash
// updates run as single statements so quantities cannot be half-moved.
type Repository interface {
	Create(item *Item) error
	GetByID(id int64) (*Item, error)
	GetAllByUserID(userID int64) ([]*Item, error)
	Update(id int64, fields map[string]interface{}) error
	Delete(id int64) error
	WashAll(userID int64) error
	WashItem(userID, itemID int64) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetUserItems lists the packing list, seeding the defaults the first time
// a user shows up with nothing.
func (s *Service) GetUserItems(userID int64) ([]*Item, error) {
	items, err := s.repo.GetAllByUserID(userID)
	if err != nil {
		s.logger.Error("failed to list luggage items", "error", err, "user_id", userID)
		return nil, err
	}

	if len(items) == 0 {
		if err := s.seedDefaults(userID); err != nil {
			return nil, err
		}
		return s.repo.GetAllByUserID(userID)
	}

	return items, nil
}

func (s *Service) seedDefaults(userID int64) error {
	for _, name := range DefaultClothing {
		item := &Item{UserID: userID, Name: name, Type: TypeClothing, HasItem: true}
		if err := s.repo.Create(item); err != nil {
			s.logger.Error("failed to seed luggage item", "error", err, "name", name)
			return err
		}
	}
	for _, name := range DefaultToiletries {
		item := &Item{UserID: userID, Name: name, Type: TypeToiletry, HasItem: true}
		if err := s.repo.Create(item); err != nil {
			s.logger.Error("failed to seed luggage item", "error", err, "name", name)
			return err
		}
	}
	s.logger.Info("default luggage seeded", "user_id", userID)
	return nil
}

func (s *Service) CreateItem(userID int64, dto CreateItemDTO) (*Item, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("luggage validation failed", "error", err, "user_id", userID)
		return nil, err
	}

	item := &Item{
		UserID:        userID,
		Name:          dto.Name,
		Type:          dto.Type,
		CleanQuantity: dto.CleanQuantity,
		DirtyQuantity: dto.DirtyQuantity,
		HasItem:       dto.HasItem,
	}
	if err := s.repo.Create(item); err != nil {
		s.logger.Error("failed to create luggage item", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("luggage item created", "item_id", item.ID, "user_id", userID)
	return item, nil
}

// UpdateItem applies only the supplied fields.
func (s *Service) UpdateItem(userID, itemID int64, dto UpdateItemDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	item, err := s.repo.GetByID(itemID)
	if err != nil || item.UserID != userID {
		return ErrItemNotFound
	}

	fields := map[string]interface{}{}
	if dto.Name != nil {
		fields["name"] = *dto.Name
	}
	if dto.Type != nil {
		fields["type"] = *dto.Type
	}
	if dto.CleanQuantity != nil {
		fields["clean_quantity"] = *dto.CleanQuantity
	}
	if dto.DirtyQuantity != nil {
		fields["dirty_quantity"] = *dto.DirtyQuantity
	}
	if dto.HasItem != nil {
		fields["has_item"] = *dto.HasItem
	}

	if len(fields) == 0 {
		return nil
	}

	if err := s.repo.Update(itemID, fields); err != nil {
		s.logger.Error("failed to update luggage item", "error", err, "item_id", itemID)
		return err
	}
	return nil
}

func (s *Service) DeleteItem(userID, itemID int64) error {
	item, err := s.repo.GetByID(itemID)
	if err != nil || item.UserID != userID {
		return ErrItemNotFound
	}

	if err := s.repo.Delete(itemID); err != nil {
		s.logger.Error("failed to delete luggage item", "error", err, "item_id", itemID)
		return err
	}
	return nil
}

// WashAll moves every clothing item's dirty quantity into clean.
// Toiletries are untouched.
func (s *Service) WashAll(userID int64) error {
	if err := s.repo.WashAll(userID); err != nil {
		s.logger.Error("failed to wash all", "error", err, "user_id", userID)
		return err
	}
	s.logger.Info("laundry done", "user_id", userID)
	return nil
}

// WashItem does the same for a single clothing item.
func (s *Service) WashItem(userID, itemID int64) error {
	if err := s.repo.WashItem(userID, itemID); err != nil {
		s.logger.Error("failed to wash item", "error", err, "item_id", itemID)
		return err
	}
	return nil
}
