package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	buildingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/building"
	spotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/spot"
	spotTypeRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/spottype"
	"github.com/m04kA/SMC-ParkingService/internal/service/inventory/models"
)

// Service сервис управления зданиями, типами мест и местами
type Service struct {
	buildingRepo BuildingRepository
	spotTypeRepo SpotTypeRepository
	spotRepo     SpotRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса инвентаря
func NewService(
	buildingRepo BuildingRepository,
	spotTypeRepo SpotTypeRepository,
	spotRepo SpotRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		buildingRepo: buildingRepo,
		spotTypeRepo: spotTypeRepo,
		spotRepo:     spotRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Здания

// ListBuildings возвращает здания по коду; onlyActive скрывает выключенные
func (s *Service) ListBuildings(ctx context.Context, onlyActive bool) (*models.BuildingListResponse, error) {
	buildings, err := s.buildingRepo.List(ctx, onlyActive)
	if err != nil {
		s.logger.Error("ListBuildings: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBuildings - repository error: %v", ErrInternal, err)
	}

	resp := &models.BuildingListResponse{Buildings: make([]models.BuildingResponse, 0, len(buildings))}
	for _, b := range buildings {
		resp.Buildings = append(resp.Buildings, *models.FromDomainBuilding(b))
	}
	return resp, nil
}

// CreateBuilding создает здание
func (s *Service) CreateBuilding(ctx context.Context, req *models.CreateBuildingRequest) (*models.BuildingResponse, error) {
	code := strings.TrimSpace(req.Code)
	name := strings.TrimSpace(req.Name)
	s.logger.Info("CreateBuilding: code=%s, name=%s", code, name)

	if code == "" || utf8.RuneCountInString(code) > domain.MaxBuildingCodeLength {
		return nil, fmt.Errorf("%w: code must be 1-%d characters", ErrInvalidInput, domain.MaxBuildingCodeLength)
	}
	if err := validateBuildingName(name); err != nil {
		return nil, err
	}

	created, err := s.buildingRepo.Create(ctx, &domain.Building{
		Code:     code,
		Name:     name,
		Location: req.Location,
		IsActive: true,
	})
	if err != nil {
		if errors.Is(err, buildingRepo.ErrDuplicateCode) {
			s.logger.Warn("CreateBuilding: code=%s already exists", code)
			return nil, fmt.Errorf("%w: building code %s", ErrAlreadyExists, code)
		}
		s.logger.Error("CreateBuilding: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateBuilding - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBuilding: successfully created building id=%s", created.ID)
	return models.FromDomainBuilding(created), nil
}

// UpdateBuilding частично обновляет здание; IsActive включает или выключает его
// Выключенное здание не показывается в доступности и не принимает новые бронирования
func (s *Service) UpdateBuilding(ctx context.Context, id uuid.UUID, req *models.UpdateBuildingRequest) (*models.BuildingResponse, error) {
	s.logger.Info("UpdateBuilding: id=%s", id)

	var updated *domain.Building

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.buildingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, buildingRepo.ErrBuildingNotFound) {
				return ErrBuildingNotFound
			}
			return fmt.Errorf("%w: UpdateBuilding - get building: %v", ErrInternal, err)
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if err := validateBuildingName(name); err != nil {
				return err
			}
			current.Name = name
		}
		if req.Location != nil {
			current.Location = req.Location
		}
		if req.IsActive != nil {
			current.IsActive = *req.IsActive
		}

		updated, err = s.buildingRepo.Update(txCtx, current)
		if err != nil {
			if errors.Is(err, buildingRepo.ErrBuildingNotFound) {
				return ErrBuildingNotFound
			}
			return fmt.Errorf("%w: UpdateBuilding - update building: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("UpdateBuilding: id=%s - %v", id, err)
		} else {
			s.logger.Warn("UpdateBuilding: id=%s - %v", id, err)
		}
		return nil, err
	}

	s.logger.Info("UpdateBuilding: building id=%s updated, active=%t", id, updated.IsActive)
	return models.FromDomainBuilding(updated), nil
}

// Типы мест

// ListSpotTypes возвращает типы мест по имени
func (s *Service) ListSpotTypes(ctx context.Context) (*models.SpotTypeListResponse, error) {
	spotTypes, err := s.spotTypeRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListSpotTypes: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListSpotTypes - repository error: %v", ErrInternal, err)
	}

	resp := &models.SpotTypeListResponse{SpotTypes: make([]models.SpotTypeResponse, 0, len(spotTypes))}
	for _, st := range spotTypes {
		resp.SpotTypes = append(resp.SpotTypes, *models.FromDomainSpotType(st))
	}
	return resp, nil
}

// CreateSpotType создает тип места
func (s *Service) CreateSpotType(ctx context.Context, req *models.CreateSpotTypeRequest) (*models.SpotTypeResponse, error) {
	name := strings.ToLower(strings.TrimSpace(req.Name))
	s.logger.Info("CreateSpotType: name=%s, shaded=%t", name, req.IsShaded)

	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	created, err := s.spotTypeRepo.Create(ctx, &domain.SpotType{
		Name:        name,
		Description: req.Description,
		IsShaded:    req.IsShaded,
	})
	if err != nil {
		if errors.Is(err, spotTypeRepo.ErrDuplicateName) {
			return nil, fmt.Errorf("%w: spot type %s", ErrAlreadyExists, name)
		}
		s.logger.Error("CreateSpotType: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateSpotType - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSpotType(created), nil
}

// Места

// ListSpots возвращает места по зданию и номеру
func (s *Service) ListSpots(ctx context.Context, req *models.ListSpotsRequest) (*models.SpotListResponse, error) {
	spots, err := s.spotRepo.List(ctx, domain.SpotsFilter{
		BuildingID: req.BuildingID,
		SpotTypeID: req.SpotTypeID,
		OnlyActive: req.OnlyActive,
	})
	if err != nil {
		s.logger.Error("ListSpots: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListSpots - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainSpotList(spots), nil
}

// CreateSpot создает одно место с указанным номером
func (s *Service) CreateSpot(ctx context.Context, req *models.CreateSpotRequest) (*models.SpotResponse, error) {
	s.logger.Info("CreateSpot: building=%s, number=%d, type=%s", req.BuildingID, req.SpotNumber, req.SpotTypeID)

	if req.BuildingID == uuid.Nil || req.SpotTypeID == uuid.Nil {
		return nil, fmt.Errorf("%w: buildingId and spotTypeId are required", ErrInvalidInput)
	}
	if req.SpotNumber <= 0 {
		return nil, fmt.Errorf("%w: spot number must be positive", ErrInvalidInput)
	}

	created, err := s.spotRepo.Create(ctx, &domain.Spot{
		BuildingID: req.BuildingID,
		SpotNumber: req.SpotNumber,
		SpotTypeID: req.SpotTypeID,
		IsActive:   true,
	})
	if err != nil {
		return nil, s.mapSpotWriteError("CreateSpot", err)
	}

	s.logger.Info("CreateSpot: successfully created spot id=%s", created.ID)
	return models.FromDomainSpot(created), nil
}

// SetSpotActive включает или выключает место; места не удаляются
func (s *Service) SetSpotActive(ctx context.Context, id uuid.UUID, active bool) (*models.SpotResponse, error) {
	s.logger.Info("SetSpotActive: spot=%s, active=%t", id, active)

	updated, err := s.spotRepo.SetActive(ctx, id, active)
	if err != nil {
		if errors.Is(err, spotRepo.ErrSpotNotFound) {
			return nil, ErrSpotNotFound
		}
		s.logger.Error("SetSpotActive: repository error: %v", err)
		return nil, fmt.Errorf("%w: SetSpotActive - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainSpot(updated), nil
}

// GenerateSpots создает Count мест с номерами, продолжающими нумерацию здания
func (s *Service) GenerateSpots(ctx context.Context, req *models.GenerateSpotsRequest) (*models.SpotListResponse, error) {
	s.logger.Info("GenerateSpots: building=%s, type=%s, count=%d", req.BuildingID, req.SpotTypeID, req.Count)

	if req.Count <= 0 || req.Count > domain.MaxSpotsPerBatch {
		return nil, fmt.Errorf("%w: count must be 1-%d", ErrInvalidInput, domain.MaxSpotsPerBatch)
	}
	if req.BuildingID == uuid.Nil || req.SpotTypeID == uuid.Nil {
		return nil, fmt.Errorf("%w: buildingId and spotTypeId are required", ErrInvalidInput)
	}

	var created []*domain.Spot

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.buildingRepo.GetByID(txCtx, req.BuildingID); err != nil {
			if errors.Is(err, buildingRepo.ErrBuildingNotFound) {
				return ErrBuildingNotFound
			}
			return fmt.Errorf("%w: GenerateSpots - get building: %v", ErrInternal, err)
		}
		if _, err := s.spotTypeRepo.GetByID(txCtx, req.SpotTypeID); err != nil {
			if errors.Is(err, spotTypeRepo.ErrSpotTypeNotFound) {
				return ErrSpotTypeNotFound
			}
			return fmt.Errorf("%w: GenerateSpots - get spot type: %v", ErrInternal, err)
		}

		last, err := s.spotRepo.MaxSpotNumber(txCtx, req.BuildingID)
		if err != nil {
			return fmt.Errorf("%w: GenerateSpots - max spot number: %v", ErrInternal, err)
		}

		created, err = s.spotRepo.CreateBatch(txCtx, req.BuildingID, req.SpotTypeID, last+1, req.Count)
		if err != nil {
			return s.mapSpotWriteError("GenerateSpots", err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrInternal) {
			s.logger.Warn("GenerateSpots: building=%s - %v", req.BuildingID, err)
		}
		return nil, err
	}

	s.logger.Info("GenerateSpots: created %d spots in building=%s", len(created), req.BuildingID)
	return models.FromDomainSpotList(created), nil
}

func (s *Service) mapSpotWriteError(op string, err error) error {
	switch {
	case errors.Is(err, spotRepo.ErrDuplicateNumber):
		return fmt.Errorf("%w: spot number", ErrAlreadyExists)
	case errors.Is(err, spotRepo.ErrInvalidReference):
		return fmt.Errorf("%w: building or spot type does not exist", ErrInvalidInput)
	default:
		s.logger.Error("%s: repository error: %v", op, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

func validateBuildingName(name string) error {
	if name == "" || utf8.RuneCountInString(name) > domain.MaxBuildingNameLength {
		return fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidInput, domain.MaxBuildingNameLength)
	}
	return nil
}
